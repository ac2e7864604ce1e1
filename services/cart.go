package services

import (
	"errors"

	"freshcart-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrAlreadyInCart   = errors.New("this product is already in the cart")
	ErrNotInCart       = errors.New("this product is not in the cart")
	ErrQuantityTooLow  = errors.New("quantity cannot be less than 1")
)

// CartLine is one cart entry as exposed to clients: the product id doubles
// as the line id, and the totals are computed, never stored.
type CartLine struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Amount     int             `json:"amount"`
	Price      decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type Cart struct {
	Products []CartLine      `json:"products"`
	Total    decimal.Decimal `json:"total"`
}

// CartService implements the cart operations. Every call takes the acting
// user explicitly; there is no ambient request state.
type CartService struct {
	DB *gorm.DB
}

func lineFromItem(item models.CartItem) CartLine {
	return CartLine{
		ID:         item.ProductID,
		Name:       item.Product.Name,
		Amount:     item.Quantity,
		Price:      item.Product.Price,
		TotalPrice: item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

// AddToCart creates a cart line with quantity 1 for (user, product).
// The check-then-insert runs inside a transaction with the unique index on
// (user_id, product_id) as the backstop: of two racing adds exactly one
// succeeds, the other surfaces ErrAlreadyInCart.
func (s *CartService) AddToCart(userID, productID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ?", productID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyInCart
		}

		item := models.CartItem{UserID: userID, ProductID: productID, Quantity: 1}
		if err := tx.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyInCart
			}
			return err
		}
		return nil
	})
}

// UpdateQuantity sets the quantity for an existing line and returns the
// updated line with its recomputed total. Quantities below 1 are rejected,
// matching the database minimum, rather than silently clamped.
func (s *CartService) UpdateQuantity(userID, productID uuid.UUID, amount int) (CartLine, error) {
	var product models.Product
	if err := s.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CartLine{}, ErrProductNotFound
		}
		return CartLine{}, err
	}

	var item models.CartItem
	if err := s.DB.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CartLine{}, ErrNotInCart
		}
		return CartLine{}, err
	}

	if amount < 1 {
		return CartLine{}, ErrQuantityTooLow
	}

	if err := s.DB.Model(&item).Update("quantity", amount).Error; err != nil {
		return CartLine{}, err
	}
	item.Quantity = amount
	item.Product = product

	return lineFromItem(item), nil
}

// RemoveFromCart destroys the (user, product) line.
func (s *CartService) RemoveFromCart(userID, productID uuid.UUID) error {
	var product models.Product
	if err := s.DB.Where("id = ?", productID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	result := s.DB.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotInCart
	}
	return nil
}

// ListCart returns every line for the user with the current catalog price
// (not a price frozen at add time) and the exact decimal cart total.
// Newest lines come first; the order is stable but not a contract.
func (s *CartService) ListCart(userID uuid.UUID) (Cart, error) {
	var items []models.CartItem
	if err := s.DB.Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return Cart{}, err
	}

	cart := Cart{Products: []CartLine{}, Total: decimal.Zero}
	for _, item := range items {
		line := lineFromItem(item)
		cart.Products = append(cart.Products, line)
		cart.Total = cart.Total.Add(line.TotalPrice)
	}
	return cart, nil
}

// ClearCart destroys all of the user's lines. Clearing an empty cart is a
// successful no-op.
func (s *CartService) ClearCart(userID uuid.UUID) error {
	return s.DB.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}
