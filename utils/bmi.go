package utils

import "errors"

// Input bounds match the dashboard steppers: 30-200 kg, 100-250 cm.
var ErrImplausibleMeasurement = errors.New("height/weight out of plausible range")

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm < 100 || heightCm > 250 || weightKg < 30 || weightKg > 200 {
		return 0, ErrImplausibleMeasurement
	}

	h := heightCm / 100.0 // to meters
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}

// CalorieGoal is one row of the daily calorie goals table.
type CalorieGoal struct {
	Goal         string `json:"goal"`
	WeeklyChange string `json:"weeklyChange"`
	Percentage   string `json:"percentage"`
	Calories     int    `json:"calories"`
}

// DailyCalorieGoals derives the maintenance calories from the Mifflin-St Jeor
// basal metabolic rate with a moderate activity factor, then scales it into
// the three goal tiers shown on the dashboard.
func DailyCalorieGoals(heightCm, weightKg float64) []CalorieGoal {
	bmr := 10*weightKg + 6.25*heightCm - 161
	maintenance := int(bmr * 1.55)

	return []CalorieGoal{
		{Goal: "Maintain weight", WeeklyChange: "0kg/week", Percentage: "100%", Calories: maintenance},
		{Goal: "Mild weight loss", WeeklyChange: "0.25kg/week", Percentage: "84%", Calories: int(float64(maintenance) * 0.84)},
		{Goal: "Weight loss", WeeklyChange: "0.5kg/week", Percentage: "69%", Calories: int(float64(maintenance) * 0.69)},
	}
}
