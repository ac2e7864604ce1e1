package handlers

import (
	"errors"
	"net/http"

	"freshcart-backend/models"
	"freshcart-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

// CreateUser registers a new customer account.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req struct {
		Email     string `json:"email" binding:"required,email"`
		Username  string `json:"username" binding:"required,max=150"`
		Password  string `json:"password" binding:"required,min=8"`
		FirstName string `json:"first_name" binding:"max=150"`
		LastName  string `json:"last_name" binding:"max=150"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		domainError(c, utils.SanitizeValidationError(err))
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		domainError(c, "A user with that email already exists")
		return
	}
	if err := h.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		domainError(c, "A user with that username already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Username:  req.Username,
		Password:  string(hashedPassword),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      "customer",
	}

	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			domainError(c, "A user with that username or email already exists")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"email":      user.Email,
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}

// TokenLogin exchanges email/password credentials for an auth token.
// The key is stored server-side so logout can revoke it.
func (h *AuthHandler) TokenLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		domainError(c, utils.SanitizeValidationError(err))
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		domainError(c, "Unable to log in with provided credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		domainError(c, "Unable to log in with provided credentials")
		return
	}

	key, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to generate token"})
		return
	}

	token := models.AuthToken{UserID: user.ID, Key: key}
	if err := h.DB.Create(&token).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to store token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": key})
}

// TokenLogout revokes the token the request was authenticated with.
func (h *AuthHandler) TokenLogout(c *gin.Context) {
	key, exists := c.Get("token_key")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}

	if err := h.DB.Where("key = ?", key).Delete(&models.AuthToken{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to revoke token"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":      user.Email,
		"id":         user.ID,
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
	})
}
