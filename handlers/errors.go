package handlers

import (
	"errors"
	"net/http"

	"freshcart-backend/services"

	"github.com/gin-gonic/gin"
)

// Wire error shapes: domain errors (already in cart, not in cart, quantity)
// use {"errors": msg}; missing resources and failed auth use {"detail": msg}.

const (
	msgAlreadyInCart  = "This product is already in the cart"
	msgNotInCart      = "This product is not in the cart"
	msgQuantityTooLow = "Quantity cannot be less than 1"
)

func domainError(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": msg})
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

// cartError maps a cart service error onto the wire.
func cartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		notFound(c)
	case errors.Is(err, services.ErrAlreadyInCart):
		domainError(c, msgAlreadyInCart)
	case errors.Is(err, services.ErrNotInCart):
		domainError(c, msgNotInCart)
	case errors.Is(err, services.ErrQuantityTooLow):
		domainError(c, msgQuantityTooLow)
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Internal server error"})
	}
}
