package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ojaswi-pandey-1106/PantryPal/services"
	"github.com/Ojaswi-pandey-1106/PantryPal/utils"
)

type RecipesController struct {
	Hub     *services.Hub
	Recipes *services.SpoonacularService
	Liked   *services.LikedRecipesService
}

func NewRecipesController(hub *services.Hub, recipes *services.SpoonacularService, liked *services.LikedRecipesService) *RecipesController {
	return &RecipesController{Hub: hub, Recipes: recipes, Liked: liked}
}

type LikeRecipeInput struct {
	RecipeID int    `json:"recipeId" validate:"required"`
	Title    string `json:"title"`
	Image    string `json:"image"`
}

// Suggestions searches recipes using the names of everything currently in
// the pantry, best matches first, with each recipe's liked flag filled in.
func (rc *RecipesController) Suggestions(c *gin.Context) {
	items := rc.Hub.PantryItems()
	names := make([]string, 0, len(items))
	for _, item := range items {
		if item.Name != "" {
			names = append(names, item.Name)
		}
	}

	recipes, err := rc.Recipes.FindByIngredients(c.Request.Context(), names)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	for i := range recipes {
		recipes[i].Liked = rc.Liked.IsLiked(recipes[i].ID)
		recipes[i].MissingSummary = recipes[i].MissingIngredientsText()
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (rc *RecipesController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := rc.Recipes.RecipeInformation(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	recipe.Liked = rc.Liked.IsLiked(recipe.ID)

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// Image proxies a recipe image download for clients that cannot reach the
// CDN directly.
func (rc *RecipesController) Image(c *gin.Context) {
	imageURL := c.Query("url")
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	data, contentType, err := rc.Recipes.DownloadImage(c.Request.Context(), imageURL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

func (rc *RecipesController) ListLiked(c *gin.Context) {
	recipes, err := rc.Liked.FetchAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (rc *RecipesController) Like(c *gin.Context) {
	var input LikeRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.Validate.Struct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := rc.Liked.Add(input.RecipeID, input.Title, input.Image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (rc *RecipesController) Unlike(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := rc.Liked.Remove(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe unliked"})
}
