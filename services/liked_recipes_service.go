package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

// LikedRecipesService manages the device-local liked recipes store. It is
// independent of authentication state: liked recipes survive sign-out and are
// never written to the remote store. Every mutation pushes the fresh list
// through the hub so likedRecipes observers stay current.
type LikedRecipesService struct {
	db  *gorm.DB
	hub *Hub
}

func NewLikedRecipesService(db *gorm.DB, hub *Hub) *LikedRecipesService {
	s := &LikedRecipesService{db: db, hub: hub}
	// Seed the hub cache so observers registered before the first mutation
	// still get a real snapshot.
	if recipes, err := s.FetchAll(); err == nil {
		hub.BroadcastLikedRecipes(recipes)
	}
	return s
}

// Add saves a recipe, stamped with the current time.
func (s *LikedRecipesService) Add(recipeID int, title, image string) (*models.LikedRecipe, error) {
	recipe := models.LikedRecipe{
		RecipeID:  int32(recipeID),
		Title:     title,
		Image:     image,
		DateAdded: time.Now(),
	}
	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to save liked recipe: %w", err)
	}
	s.notify()
	return &recipe, nil
}

// Remove deletes every like for the given external recipe id.
func (s *LikedRecipesService) Remove(recipeID int) error {
	if err := s.db.Where("recipe_id = ?", int32(recipeID)).Delete(&models.LikedRecipe{}).Error; err != nil {
		return fmt.Errorf("failed to remove liked recipe: %w", err)
	}
	s.notify()
	return nil
}

// FetchAll returns all liked recipes, most recently liked first.
func (s *LikedRecipesService) FetchAll() ([]models.LikedRecipe, error) {
	var recipes []models.LikedRecipe
	err := s.db.Order("date_added DESC").Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch liked recipes: %w", err)
	}
	return recipes, nil
}

// IsLiked reports whether the given external recipe id is saved.
func (s *LikedRecipesService) IsLiked(recipeID int) bool {
	var count int64
	s.db.Model(&models.LikedRecipe{}).Where("recipe_id = ?", int32(recipeID)).Count(&count)
	return count > 0
}

func (s *LikedRecipesService) notify() {
	recipes, err := s.FetchAll()
	if err != nil {
		return
	}
	s.hub.BroadcastLikedRecipes(recipes)
}
