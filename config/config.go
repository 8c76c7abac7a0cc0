package config

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

// LocalDB is the on-device sqlite database. It only holds liked recipes;
// pantry and shopping data live in Firestore.
var LocalDB *gorm.DB

type Config struct {
	Port              string
	FirestoreProject  string
	CredentialsFile   string
	FirebaseAPIKey    string
	SpoonacularAPIKey string
	LocalDBPath       string
	JWTSecret         string
}

// Load reads .env (if present) and the environment. An empty
// FirestoreProject puts the service in dev mode with an in-memory store.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment")
	}

	cfg := &Config{
		Port:              getenv("PORT", "8080"),
		FirestoreProject:  os.Getenv("FIRESTORE_PROJECT_ID"),
		CredentialsFile:   os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirebaseAPIKey:    os.Getenv("FIREBASE_API_KEY"),
		SpoonacularAPIKey: os.Getenv("SPOONACULAR_API_KEY"),
		LocalDBPath:       getenv("LOCAL_DB_PATH", "pantrypal.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
	}
	if cfg.JWTSecret == "" {
		log.Fatalf("JWT_SECRET must be set")
	}
	return cfg
}

// InitLocalDB opens the liked-recipes database and migrates its schema.
func InitLocalDB(path string) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to open local database: %v", err)
	}

	if err := db.AutoMigrate(&models.LikedRecipe{}); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	LocalDB = db
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
