package models

import "testing"

func TestMissingIngredientsText(t *testing.T) {
	tests := []struct {
		name   string
		missed int
		want   string
	}{
		{"none missing", 0, "All ingredients available"},
		{"one missing", 1, "1 ingredient missing"},
		{"several missing", 3, "3 ingredients missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Recipe{MissedIngredientCount: tt.missed}
			if got := r.MissingIngredientsText(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			if got := r.HasMissingIngredients(); got != (tt.missed > 0) {
				t.Errorf("HasMissingIngredients = %v", got)
			}
		})
	}
}
