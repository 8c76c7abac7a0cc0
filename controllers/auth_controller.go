package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ojaswi-pandey-1106/PantryPal/services"
	"github.com/Ojaswi-pandey-1106/PantryPal/utils"
)

type AuthController struct {
	Hub *services.Hub
}

func NewAuthController(hub *services.Hub) *AuthController {
	return &AuthController{Hub: hub}
}

type SignUpInput struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) SignUp(c *gin.Context) {
	var input SignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.ValidateSignUpPassword(input.Password, input.ConfirmPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Hub.SignUp(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.Hub.SignIn(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (ac *AuthController) Logout(c *gin.Context) {
	ac.Hub.SignOut()
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// respondAuthError turns identity-provider failures into the messages the
// app shows, keyed by the backend's error code.
func respondAuthError(c *gin.Context, err error) {
	if ae, ok := services.AsAuthError(err); ok {
		status := http.StatusUnauthorized
		switch ae.Code {
		case services.AuthCodeEmailExists, services.AuthCodeInvalidEmail, services.AuthCodeWeakPassword:
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": ae.UserMessage(), "code": ae.Code})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}
