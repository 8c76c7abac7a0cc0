package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
	"github.com/Ojaswi-pandey-1106/PantryPal/services"
	"github.com/Ojaswi-pandey-1106/PantryPal/utils"
)

type PantryController struct {
	Hub *services.Hub
}

func NewPantryController(hub *services.Hub) *PantryController {
	return &PantryController{Hub: hub}
}

type AddPantryItemInput struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Calories int    `json:"calories" validate:"min=0"`
	Expiry   string `json:"date" validate:"required"`
	Category int    `json:"category" validate:"min=0,max=7"`
	Barcode  string `json:"barcode"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

// List returns the cached pantry, optionally narrowed by the q substring
// filter and a category ordinal.
func (pc *PantryController) List(c *gin.Context) {
	items := pc.Hub.PantryItems()

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

	items = services.FilterPantryItems(items, c.Query("q"), category)
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (pc *PantryController) Add(c *gin.Context) {
	var input AddPantryItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expiry, err := time.Parse(time.RFC3339, input.Expiry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC 3339"})
		return
	}
	category, ok := models.CategoryFromOrdinal(input.Category)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	item, err := pc.Hub.AddPantryItem(c.Request.Context(), services.PantryItemInput{
		Name:     input.Name,
		Quantity: input.Quantity,
		Calories: input.Calories,
		Expiry:   expiry,
		Category: category,
		Barcode:  input.Barcode,
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

func (pc *PantryController) UpdateQuantity(c *gin.Context) {
	item, ok := pc.Hub.PantryItemByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "pantry item not found"})
		return
	}

	var input UpdateQuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := pc.Hub.UpdatePantryQuantity(c.Request.Context(), item, input.Quantity); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quantity updated"})
}

func (pc *PantryController) Delete(c *gin.Context) {
	item, ok := pc.Hub.PantryItemByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "pantry item not found"})
		return
	}

	if err := pc.Hub.DeletePantryItem(c.Request.Context(), item); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pantry item deleted"})
}
