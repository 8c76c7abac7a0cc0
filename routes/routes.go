package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Ojaswi-pandey-1106/PantryPal/controllers"
	"github.com/Ojaswi-pandey-1106/PantryPal/middlewares"
	"github.com/Ojaswi-pandey-1106/PantryPal/services"
)

type Deps struct {
	Hub      *services.Hub
	Products *services.OpenFoodFactsService
	Recipes  *services.SpoonacularService
	Liked    *services.LikedRecipesService
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	authCtrl := controllers.NewAuthController(d.Hub)
	pantryCtrl := controllers.NewPantryController(d.Hub)
	shoppingCtrl := controllers.NewShoppingController(d.Hub)
	barcodeCtrl := controllers.NewBarcodeController(d.Hub, d.Products)
	recipesCtrl := controllers.NewRecipesController(d.Hub, d.Recipes, d.Liked)
	realtimeCtrl := controllers.NewRealtimeController(d.Hub)
	dashboardCtrl := controllers.NewDashboardController()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/signup", authCtrl.SignUp)
		auth.POST("/login", authCtrl.Login)
	}

	// Everything else needs a session token
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(d.Hub))
	{
		api.POST("/auth/logout", authCtrl.Logout)

		api.GET("/pantry", pantryCtrl.List)
		api.POST("/pantry", pantryCtrl.Add)
		api.PUT("/pantry/:id/quantity", pantryCtrl.UpdateQuantity)
		api.DELETE("/pantry/:id", pantryCtrl.Delete)

		api.GET("/shopping", shoppingCtrl.List)
		api.POST("/shopping", shoppingCtrl.Add)
		api.PUT("/shopping/:id/purchased", shoppingCtrl.SetPurchased)
		api.DELETE("/shopping/:id", shoppingCtrl.Delete)

		api.GET("/barcode/:code", barcodeCtrl.Lookup)
		api.POST("/barcode/:code/pantry", barcodeCtrl.AddToPantry)

		api.GET("/recipes/suggestions", recipesCtrl.Suggestions)
		api.GET("/recipes/image", recipesCtrl.Image)
		api.GET("/recipes/liked", recipesCtrl.ListLiked)
		api.POST("/recipes/liked", recipesCtrl.Like)
		api.DELETE("/recipes/liked/:id", recipesCtrl.Unlike)
		api.GET("/recipes/:id", recipesCtrl.Detail)

		api.GET("/dashboard", dashboardCtrl.Metrics)

		api.GET("/ws", realtimeCtrl.Updates)
	}

	return r
}
