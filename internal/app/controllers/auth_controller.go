package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/teamthree/jobapply/internal/app/models/dto"
	"github.com/teamthree/jobapply/internal/app/services"
	"github.com/teamthree/jobapply/internal/middleware"
)

// AuthController handles registration, login and session endpoints.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles POST /auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid request body",
		})
		return
	}

	result, err := ctrl.authService.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success:   true,
		Message:   "Registration successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

// Login handles POST /auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "ValidationError",
			Message: "Invalid request body",
		})
		return
	}

	result, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success:   true,
		Message:   "Login successful",
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      result.User,
	})
}

// Logout handles POST /auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// Profile handles GET /auth/profile
func (ctrl *AuthController) Profile(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	user, err := ctrl.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
