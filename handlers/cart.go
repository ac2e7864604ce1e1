package handlers

import (
	"net/http"

	"freshcart-backend/services"
	"freshcart-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CartHandler struct {
	Cart *services.CartService
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

func productIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		notFound(c)
		return uuid.Nil, false
	}
	return id, true
}

// AddToCart puts one unit of the product into the user's cart.
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	if err := h.Cart.AddToCart(userID, productID); err != nil {
		cartError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// UpdateQuantity changes the quantity of an existing cart line and returns
// the updated line with its recomputed total.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req struct {
		Amount *int `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		domainError(c, utils.SanitizeValidationError(err))
		return
	}

	line, err := h.Cart.UpdateQuantity(userID, productID, *req.Amount)
	if err != nil {
		cartError(c, err)
		return
	}

	c.JSON(http.StatusOK, line)
}

// RemoveFromCart destroys the cart line for this product.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	if err := h.Cart.RemoveFromCart(userID, productID); err != nil {
		cartError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetCart lists the user's cart lines and the cart total.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cart, err := h.Cart.ListCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to fetch cart"})
		return
	}

	c.JSON(http.StatusOK, cart)
}

// ClearCart empties the user's cart. Clearing an empty cart succeeds.
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.Cart.ClearCart(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to clear cart"})
		return
	}

	c.Status(http.StatusNoContent)
}
