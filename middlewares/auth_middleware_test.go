package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
	"github.com/Ojaswi-pandey-1106/PantryPal/services"
	"github.com/Ojaswi-pandey-1106/PantryPal/utils"
)

type nullStore struct{}

func (nullStore) AddPantryItem(ctx context.Context, item models.PantryItem) (string, error) {
	return "p1", nil
}
func (nullStore) UpdatePantryItem(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}
func (nullStore) DeletePantryItem(ctx context.Context, id string) error { return nil }
func (nullStore) AddShoppingItem(ctx context.Context, item models.ShoppingItem) (string, error) {
	return "s1", nil
}
func (nullStore) UpdateShoppingItem(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}
func (nullStore) DeleteShoppingItem(ctx context.Context, id string) error { return nil }
func (nullStore) ListenPantry(ctx context.Context, userID string) (<-chan []services.DocChange, error) {
	return make(chan []services.DocChange), nil
}
func (nullStore) ListenShopping(ctx context.Context, userID string) (<-chan []services.DocChange, error) {
	return make(chan []services.DocChange), nil
}

type nullAuth struct{}

func (nullAuth) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	return nil, nil
}
func (nullAuth) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	return nil, nil
}

func newAuthTestRouter(hub *services.Hub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(hub))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})
	return r
}

func doAuthedRequest(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	hub := services.NewHub(nullStore{}, nullAuth{})

	w := doAuthedRequest(t, newAuthTestRouter(hub), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	w = doAuthedRequest(t, newAuthTestRouter(hub), "not-a-token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareResumesSession(t *testing.T) {
	// A valid token arriving while the hub has no session (service restart)
	// must re-establish the session from the claims, so writes carry the uid.
	t.Setenv("JWT_SECRET", "test-secret")
	hub := services.NewHub(nullStore{}, nullAuth{})

	token, err := utils.GenerateJWT("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w := doAuthedRequest(t, newAuthTestRouter(hub), token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if id, ok := hub.CurrentUserID(); !ok || id != "u1" {
		t.Errorf("CurrentUserID after request = %q/%v, want u1/true", id, ok)
	}
}

func TestAuthMiddlewareRejectsOtherUsersToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	hub := services.NewHub(nullStore{}, nullAuth{})
	hub.Resume(&models.User{ID: "u2", Email: "u2@example.com"})

	token, err := utils.GenerateJWT("u1", "u1@example.com")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w := doAuthedRequest(t, newAuthTestRouter(hub), token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for a token from another user", w.Code)
	}
	if id, _ := hub.CurrentUserID(); id != "u2" {
		t.Errorf("active session changed to %q, want u2 untouched", id)
	}
}
