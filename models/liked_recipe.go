package models

import "time"

// LikedRecipe is a recipe the user saved. It lives only in the local sqlite
// database and is never synced to Firestore, so it survives sign-out.
type LikedRecipe struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	RecipeID  int32     `gorm:"index;not null" json:"recipeId"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	DateAdded time.Time `gorm:"index" json:"dateAdded"`
}
