package models

import "time"

// PantryItem is one food product the user currently has. Persisted in the
// pantryItems Firestore collection; ID is the document ID and stays empty
// until the item has been written.
type PantryItem struct {
	ID             string       `firestore:"-" json:"id"`
	Name           string       `firestore:"name" json:"name"`
	Quantity       int          `firestore:"quantity" json:"quantity"`
	Calories       int          `firestore:"calories" json:"calories"`
	Expiry         time.Time    `firestore:"date" json:"date"`
	Category       FoodCategory `firestore:"category" json:"category"`
	UserID         string       `firestore:"userId" json:"userId"`
	Barcode        string       `firestore:"barcode" json:"barcode,omitempty"`
	Fat            float64      `firestore:"fat" json:"fat"`
	Carbs          float64      `firestore:"carbs" json:"carbs"`
	Protein        float64      `firestore:"protein" json:"protein"`
	NutritionGrade string       `firestore:"nutritionGrade" json:"nutritionGrade,omitempty"`
}

// ShoppingItem is one food product the user intends to buy. Persisted in the
// shoppingItems Firestore collection. Unlike pantry items there is no barcode
// and no merge-on-duplicate rule.
type ShoppingItem struct {
	ID          string       `firestore:"-" json:"id"`
	Name        string       `firestore:"name" json:"name"`
	Quantity    int          `firestore:"quantity" json:"quantity"`
	IsPurchased bool         `firestore:"isPurchased" json:"isPurchased"`
	Category    FoodCategory `firestore:"category" json:"category"`
	Calories    int          `firestore:"calories" json:"calories"`
	UserID      string       `firestore:"userId" json:"userId"`
}
