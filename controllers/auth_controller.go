package controllers

import (
	"net/http"
	"time"

	"storefront/logger"
	"storefront/middleware"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerRequest struct {
	Username        string `form:"username" json:"username" binding:"required"`
	Password        string `form:"password" json:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type AuthController struct {
	authService *services.AuthService
	sessionTTL  time.Duration
}

func NewAuthController(authService *services.AuthService, sessionTTL time.Duration) *AuthController {
	return &AuthController{authService: authService, sessionTTL: sessionTTL}
}

// Register creates a customer account.
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required."})
		return
	}

	if appErr := ac.authService.Register(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword); appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful! Please login."})
}

// Login verifies credentials and sets the session cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required."})
		return
	}

	sessionID, session, appErr := ac.authService.Login(c.Request.Context(), req.Username, req.Password)
	if appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.SetCookie(middleware.SessionCookie, sessionID, int(ac.sessionTTL.Seconds()), "/", "", false, true)
	logger.Info(c, "user logged in", zap.Uint("user_id", session.UserID))

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"user": gin.H{
			"id":       session.UserID,
			"username": session.Username,
			"role":     session.Role,
		},
	})
}

// Logout clears the session. Safe to call without one.
func (ac *AuthController) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(middleware.SessionCookie)

	if appErr := ac.authService.Logout(c.Request.Context(), sessionID); appErr != nil {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out."})
}
