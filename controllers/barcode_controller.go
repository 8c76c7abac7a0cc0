package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
	"github.com/Ojaswi-pandey-1106/PantryPal/services"
)

// Scanned products go in with quantity 1 and a week until expiry, matching
// the app's scan-and-add flow.
const defaultScanExpiry = 7 * 24 * time.Hour

type BarcodeController struct {
	Hub      *services.Hub
	Products *services.OpenFoodFactsService
}

func NewBarcodeController(hub *services.Hub, products *services.OpenFoodFactsService) *BarcodeController {
	return &BarcodeController{Hub: hub, Products: products}
}

// Lookup returns the product behind a barcode without touching the pantry.
// If the user already has an item with this barcode, the response carries it
// so the client can show "already in pantry" with the current quantity.
func (bc *BarcodeController) Lookup(c *gin.Context) {
	barcode := c.Param("code")
	product, err := bc.Products.Lookup(c.Request.Context(), barcode)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in database"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"product": product}
	if item, ok := bc.Hub.FindPantryItemByBarcode(barcode); ok {
		resp["pantryItem"] = item
	}
	c.JSON(http.StatusOK, resp)
}

// AddToPantry looks the barcode up and adds the product to the pantry. If an
// item with the same barcode already exists, its quantity is incremented
// instead of creating a duplicate.
func (bc *BarcodeController) AddToPantry(c *gin.Context) {
	barcode := c.Param("code")
	product, err := bc.Products.Lookup(c.Request.Context(), barcode)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in database"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	item, err := bc.Hub.AddPantryItem(c.Request.Context(), services.PantryItemInput{
		Name:           product.Name,
		Quantity:       1,
		Calories:       product.Calories,
		Expiry:         time.Now().Add(defaultScanExpiry),
		Category:       models.CategoryFromLabel(product.Categories),
		Barcode:        barcode,
		Fat:            product.Fat,
		Carbs:          product.Carbs,
		Protein:        product.Protein,
		NutritionGrade: product.NutritionGrade,
	})
	if err != nil {
		if errors.Is(err, services.ErrNoSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in first"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": item, "product": product})
}
