package models

import "time"

// Decoding here is deliberately best-effort: a document with a missing or
// mistyped field still yields an item, with that field left at its zero
// value. A single bad field must never abort a whole change batch.

func docString(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

// Firestore hands back integers as int64 but anything that went through JSON
// arrives as float64, so accept both.
func docInt(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func docFloat(data map[string]interface{}, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

func docBool(data map[string]interface{}, key string) bool {
	b, _ := data[key].(bool)
	return b
}

func docTime(data map[string]interface{}, key string) time.Time {
	t, _ := data[key].(time.Time)
	return t
}

func docCategory(data map[string]interface{}, key string) FoodCategory {
	c, _ := CategoryFromOrdinal(docInt(data, key))
	return c
}

// PantryItemFromDoc decodes a pantryItems document.
func PantryItemFromDoc(id string, data map[string]interface{}) PantryItem {
	return PantryItem{
		ID:             id,
		Name:           docString(data, "name"),
		Quantity:       docInt(data, "quantity"),
		Calories:       docInt(data, "calories"),
		Expiry:         docTime(data, "date"),
		Category:       docCategory(data, "category"),
		UserID:         docString(data, "userId"),
		Barcode:        docString(data, "barcode"),
		Fat:            docFloat(data, "fat"),
		Carbs:          docFloat(data, "carbs"),
		Protein:        docFloat(data, "protein"),
		NutritionGrade: docString(data, "nutritionGrade"),
	}
}

// ShoppingItemFromDoc decodes a shoppingItems document.
func ShoppingItemFromDoc(id string, data map[string]interface{}) ShoppingItem {
	return ShoppingItem{
		ID:          id,
		Name:        docString(data, "name"),
		Quantity:    docInt(data, "quantity"),
		IsPurchased: docBool(data, "isPurchased"),
		Category:    docCategory(data, "category"),
		Calories:    docInt(data, "calories"),
		UserID:      docString(data, "userId"),
	}
}
