package models

import "fmt"

// Recipe is a suggestion from the Spoonacular API. These are transient:
// held in memory for a response, never written to either store.
type Recipe struct {
	ID                    int          `json:"id"`
	Title                 string       `json:"title"`
	Image                 string       `json:"image"`
	ImageType             string       `json:"imageType,omitempty"`
	UsedIngredientCount   int          `json:"usedIngredientCount"`
	MissedIngredientCount int          `json:"missedIngredientCount"`
	MissedIngredients     []Ingredient `json:"missedIngredients,omitempty"`
	UsedIngredients       []Ingredient `json:"usedIngredients,omitempty"`
	UnusedIngredients     []Ingredient `json:"unusedIngredients,omitempty"`
	Likes                 int          `json:"likes"`
	ReadyInMinutes        int          `json:"readyInMinutes,omitempty"`
	Servings              int          `json:"servings,omitempty"`
	Summary               string       `json:"summary,omitempty"`
	Instructions          string       `json:"instructions,omitempty"`

	// Liked and MissingSummary are filled in before the recipe is returned:
	// Liked from the local store, MissingSummary via MissingIngredientsText.
	Liked          bool   `json:"liked"`
	MissingSummary string `json:"missingIngredientsText,omitempty"`
}

type Ingredient struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Original string  `json:"original,omitempty"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit,omitempty"`
	Image    string  `json:"image,omitempty"`
}

func (r *Recipe) HasMissingIngredients() bool {
	return r.MissedIngredientCount > 0
}

func (r *Recipe) MissingIngredientsText() string {
	if r.MissedIngredientCount <= 0 {
		return "All ingredients available"
	}
	plural := "s"
	if r.MissedIngredientCount == 1 {
		plural = ""
	}
	return fmt.Sprintf("%d ingredient%s missing", r.MissedIngredientCount, plural)
}
