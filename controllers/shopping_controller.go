package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
	"github.com/Ojaswi-pandey-1106/PantryPal/services"
	"github.com/Ojaswi-pandey-1106/PantryPal/utils"
)

type ShoppingController struct {
	Hub *services.Hub
}

func NewShoppingController(hub *services.Hub) *ShoppingController {
	return &ShoppingController{Hub: hub}
}

type AddShoppingItemInput struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Calories int    `json:"calories" validate:"min=0"`
	Category int    `json:"category" validate:"min=0,max=7"`
}

type SetPurchasedInput struct {
	IsPurchased *bool `json:"isPurchased" validate:"required"`
}

func (sc *ShoppingController) List(c *gin.Context) {
	items := sc.Hub.ShoppingItems()

	var category *models.FoodCategory
	if raw := c.Query("category"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		cat, ok := models.CategoryFromOrdinal(n)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		category = &cat
	}

	items = services.FilterShoppingItems(items, c.Query("q"), category)
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (sc *ShoppingController) Add(c *gin.Context) {
	var input AddShoppingItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, ok := models.CategoryFromOrdinal(input.Category)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	item, err := sc.Hub.AddShoppingItem(c.Request.Context(), models.ShoppingItem{
		Name:     input.Name,
		Quantity: input.Quantity,
		Calories: input.Calories,
		Category: category,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in first"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (sc *ShoppingController) SetPurchased(c *gin.Context) {
	item, ok := sc.Hub.ShoppingItemByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "shopping item not found"})
		return
	}

	var input SetPurchasedInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.Hub.SetShoppingPurchased(c.Request.Context(), item, *input.IsPurchased); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shopping item updated"})
}

func (sc *ShoppingController) Delete(c *gin.Context) {
	item, ok := sc.Hub.ShoppingItemByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "shopping item not found"})
		return
	}

	if err := sc.Hub.DeleteShoppingItem(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "shopping item deleted"})
}
