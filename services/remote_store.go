package services

import (
	"context"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeModified
	ChangeRemoved
)

// DocChange is one incremental change from a remote collection's change
// stream. OldIndex/NewIndex are the backend's ordering hints; the hub applies
// changes by document ID and only uses the hints for logging.
type DocChange struct {
	Kind     ChangeKind
	ID       string
	Data     map[string]interface{}
	OldIndex int
	NewIndex int
}

// RemoteStore is the boundary to the remote document store holding the
// pantryItems and shoppingItems collections. Listen channels deliver batches
// of changes scoped to one user and are closed when the context is cancelled
// or the stream fails; no retry happens at this layer.
type RemoteStore interface {
	AddPantryItem(ctx context.Context, item models.PantryItem) (string, error)
	UpdatePantryItem(ctx context.Context, id string, fields map[string]interface{}) error
	DeletePantryItem(ctx context.Context, id string) error

	AddShoppingItem(ctx context.Context, item models.ShoppingItem) (string, error)
	UpdateShoppingItem(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteShoppingItem(ctx context.Context, id string) error

	ListenPantry(ctx context.Context, userID string) (<-chan []DocChange, error)
	ListenShopping(ctx context.Context, userID string) (<-chan []DocChange, error)
}

func pantryFields(item models.PantryItem) map[string]interface{} {
	return map[string]interface{}{
		"name":           item.Name,
		"quantity":       item.Quantity,
		"calories":       item.Calories,
		"date":           item.Expiry,
		"category":       int(item.Category),
		"userId":         item.UserID,
		"barcode":        item.Barcode,
		"fat":            item.Fat,
		"carbs":          item.Carbs,
		"protein":        item.Protein,
		"nutritionGrade": item.NutritionGrade,
	}
}

func shoppingFields(item models.ShoppingItem) map[string]interface{} {
	return map[string]interface{}{
		"name":        item.Name,
		"quantity":    item.Quantity,
		"isPurchased": item.IsPurchased,
		"category":    int(item.Category),
		"calories":    item.Calories,
		"userId":      item.UserID,
	}
}
