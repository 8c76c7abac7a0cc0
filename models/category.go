package models

import "strings"

// FoodCategory is stored in Firestore as its raw ordinal, so the order of
// these constants is part of the persisted data format and must not change.
type FoodCategory int

const (
	CategoryBeverages FoodCategory = iota
	CategoryDairy
	CategoryFruits
	CategoryVegetables
	CategoryGrains
	CategoryProteins
	CategorySnacks
	CategoryCondiments
)

var AllCategories = []FoodCategory{
	CategoryBeverages,
	CategoryDairy,
	CategoryFruits,
	CategoryVegetables,
	CategoryGrains,
	CategoryProteins,
	CategorySnacks,
	CategoryCondiments,
}

var categoryNames = [...]string{
	"Beverages",
	"Dairy",
	"Fruits",
	"Vegetables",
	"Grains",
	"Proteins",
	"Snacks",
	"Condiments",
}

func (c FoodCategory) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// CategoryFromOrdinal converts a stored ordinal back to a category.
func CategoryFromOrdinal(n int) (FoodCategory, bool) {
	if n < 0 || n >= len(categoryNames) {
		return CategoryBeverages, false
	}
	return FoodCategory(n), true
}

// categoryKeywords maps OpenFoodFacts category text onto our fixed set.
// Checked in order; first hit wins.
var categoryKeywords = []struct {
	category FoodCategory
	words    []string
}{
	{CategoryBeverages, []string{"beverage", "drink", "coffee", "tea", "juice"}},
	{CategoryDairy, []string{"dairy", "milk", "cheese", "yogurt"}},
	{CategoryFruits, []string{"fruit", "apple", "banana", "orange"}},
	{CategoryVegetables, []string{"vegetable", "carrot", "broccoli", "spinach"}},
	{CategoryGrains, []string{"grain", "bread", "cereal", "rice", "pasta"}},
	{CategoryProteins, []string{"protein", "meat", "chicken", "fish", "egg"}},
	{CategorySnacks, []string{"snack", "chips", "cookie", "candy"}},
	{CategoryCondiments, []string{"condiment", "sauce", "salt", "spice"}},
}

// CategoryFromLabel maps a free-text category string from the product API
// to the closest FoodCategory. Unmatched text falls back to beverages.
func CategoryFromLabel(label string) FoodCategory {
	lower := strings.ToLower(label)
	for _, entry := range categoryKeywords {
		for _, w := range entry.words {
			if strings.Contains(lower, w) {
				return entry.category
			}
		}
	}
	return CategoryBeverages
}
