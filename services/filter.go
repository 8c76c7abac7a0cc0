package services

import (
	"strings"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

// FilterPantryItems narrows items to those whose name contains query
// (case-insensitive) and, when category is non-nil, whose category matches.
func FilterPantryItems(items []models.PantryItem, query string, category *models.FoodCategory) []models.PantryItem {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.PantryItem, 0, len(items))
	for _, item := range items {
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		if category != nil && item.Category != *category {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterShoppingItems is the shopping-list counterpart of FilterPantryItems.
func FilterShoppingItems(items []models.ShoppingItem, query string, category *models.FoodCategory) []models.ShoppingItem {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.ShoppingItem, 0, len(items))
	for _, item := range items {
		if query != "" && !strings.Contains(strings.ToLower(item.Name), query) {
			continue
		}
		if category != nil && item.Category != *category {
			continue
		}
		out = append(out, item)
	}
	return out
}
