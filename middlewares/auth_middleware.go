// middlewares/auth_middleware.go
package middlewares

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
	"github.com/Ojaswi-pandey-1106/PantryPal/services"
)

// AuthMiddleware validates the Bearer session token and puts the Firebase
// uid and email on the request context. If the hub has no in-process session
// (a restart with a still-valid token), it resumes one from the claims so the
// per-user streams re-attach; a token for a different user than the active
// session is rejected.
func AuthMiddleware(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		secret := []byte(os.Getenv("JWT_SECRET"))
		if len(secret) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured: JWT_SECRET not set"})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			return
		}

		uid, _ := claims["uid"].(string)
		if uid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "uid claim missing"})
			return
		}
		email, _ := claims["email"].(string)

		if current, active := hub.CurrentUserID(); !active {
			hub.Resume(&models.User{ID: uid, Email: email})
		} else if current != uid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token does not match the active session"})
			return
		}

		c.Set("userID", uid)
		c.Set("email", email)

		c.Next()
	}
}
