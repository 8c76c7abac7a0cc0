package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ojaswi-pandey-1106/PantryPal/utils"
)

type DashboardController struct{}

func NewDashboardController() *DashboardController {
	return &DashboardController{}
}

// Metrics computes BMI and the daily calorie goal tiers for the given body
// measurements. Nothing is persisted; the client passes weight and height on
// every call, the way the dashboard steppers re-query on each change.
func (dc *DashboardController) Metrics(c *gin.Context) {
	weight, err := strconv.ParseFloat(c.Query("weight"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weight (kg) is required"})
		return
	}
	height, err := strconv.ParseFloat(c.Query("height"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "height (cm) is required"})
		return
	}

	bmi, err := utils.CalculateBMI(height, weight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bmi":          bmi,
		"bmiCategory":  utils.BMICategory(bmi),
		"calorieGoals": utils.DailyCalorieGoals(height, weight),
	})
}
