package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
	"github.com/Ojaswi-pandey-1106/PantryPal/services"
)

type RealtimeController struct {
	Hub *services.Hub
}

func NewRealtimeController(hub *services.Hub) *RealtimeController {
	return &RealtimeController{Hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

func interestFromQuery(s string) services.ListenerType {
	switch s {
	case "pantry":
		return services.ListenerPantry
	case "shopping":
		return services.ListenerShopping
	case "auth":
		return services.ListenerAuth
	case "likedRecipes":
		return services.ListenerLikedRecipes
	default:
		return services.ListenerAll
	}
}

// Updates streams hub notifications to a websocket client. The optional
// interest query parameter narrows which collections the client hears about;
// registration immediately delivers the current snapshots.
func (rc *RealtimeController) Updates(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	var wmu sync.Mutex
	send := func(kind string, payload interface{}) {
		wmu.Lock()
		defer wmu.Unlock()
		_ = conn.WriteJSON(map[string]interface{}{"kind": kind, "payload": payload})
	}

	observer := &services.Observer{
		Kind: interestFromQuery(c.Query("interest")),
		OnPantryChange: func(items []models.PantryItem) {
			send("pantry.update", items)
		},
		OnShoppingChange: func(items []models.ShoppingItem) {
			send("shopping.update", items)
		},
		OnAuthChange: func(user *models.User) {
			send("auth.update", user)
		},
		OnLikedRecipesChange: func(recipes []models.LikedRecipe) {
			send("likedRecipes.update", recipes)
		},
	}
	rc.Hub.AddObserver(observer)

	// ping to keep connections alive through some proxies
	done := make(chan struct{})
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				wmu.Lock()
				err := conn.WriteMessage(websocket.PingMessage, nil)
				wmu.Unlock()
				if err != nil {
					return
				}
			}
		}
	}()

	// read loop ends on client close or error; unregister then
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			rc.Hub.RemoveObserver(observer)
			close(done)
			_ = conn.Close()
			return
		}
	}
}
