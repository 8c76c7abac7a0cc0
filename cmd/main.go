package main

import (
	"context"
	"log"

	"github.com/Ojaswi-pandey-1106/PantryPal/config"
	"github.com/Ojaswi-pandey-1106/PantryPal/routes"
	"github.com/Ojaswi-pandey-1106/PantryPal/services"
)

func main() {
	cfg := config.Load()
	config.InitLocalDB(cfg.LocalDBPath)

	var store services.RemoteStore
	if cfg.FirestoreProject != "" {
		fs, err := services.NewFirestoreStore(context.Background(), cfg.FirestoreProject, cfg.CredentialsFile)
		if err != nil {
			log.Fatalf("Failed to connect to Firestore: %v", err)
		}
		defer fs.Close()
		store = fs
	} else {
		log.Printf("FIRESTORE_PROJECT_ID not set, using in-memory store")
		store = services.NewMemoryStore()
	}

	hub := services.NewHub(store, services.NewFirebaseAuthClient(cfg.FirebaseAPIKey))
	liked := services.NewLikedRecipesService(config.LocalDB, hub)

	r := routes.SetupRouter(routes.Deps{
		Hub:      hub,
		Products: services.NewOpenFoodFactsService(),
		Recipes:  services.NewSpoonacularService(cfg.SpoonacularAPIKey),
		Liked:    liked,
	})
	r.Run(":" + cfg.Port)
}
