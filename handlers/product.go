package handlers

import (
	"errors"
	"net/http"

	"freshcart-backend/models"
	"freshcart-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB *gorm.DB
}

// productResponse flattens the category chain into names, the shape the
// storefront client renders.
type productResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Subcategory string          `json:"subcategory"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
}

func toProductResponse(p models.Product) productResponse {
	resp := productResponse{
		ID:    p.ID,
		Name:  p.Name,
		Slug:  p.Slug,
		Price: p.Price,
		Image: p.Image,
	}
	if p.Subcategory != nil {
		resp.Subcategory = p.Subcategory.Name
		if p.Subcategory.Category != nil {
			resp.Category = p.Subcategory.Category.Name
		}
	}
	return resp
}

// GetProducts lists products, filterable by subcategory or category id and
// searchable by name substring.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	page, limit, offset := pageParams(c)

	query := h.DB.Model(&models.Product{}).
		Preload("Subcategory.Category").
		Joins("JOIN subcategories ON subcategories.id = products.subcategory_id")

	if subcategoryID := c.Query("subcategory"); subcategoryID != "" {
		query = query.Where("products.subcategory_id = ?", subcategoryID)
	}
	if categoryID := c.Query("category"); categoryID != "" {
		query = query.Where("subcategories.category_id = ?", categoryID)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(products.name) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var products []models.Product
	if err := query.Select("products.*").
		Order("subcategories.category_id, products.subcategory_id").
		Offset(offset).Limit(limit).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to fetch products"})
		return
	}

	results := make([]productResponse, 0, len(products))
	for _, p := range products {
		results = append(results, toProductResponse(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"page":    page,
		"limit":   limit,
		"results": results,
	})
}

// GetProduct returns one product by id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Preload("Subcategory.Category").Where("id = ?", id).First(&product).Error; err != nil {
		notFound(c)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

type productRequest struct {
	Name          string          `json:"name" binding:"required,max=256"`
	Slug          string          `json:"slug" binding:"required,max=50"`
	Price         decimal.Decimal `json:"price"`
	SubcategoryID uuid.UUID       `json:"subcategory_id" binding:"required"`
	Image         string          `json:"image"`
}

func (h *ProductHandler) validateProductRequest(c *gin.Context, req *productRequest) bool {
	if req.Price.LessThan(models.MinPrice) {
		domainError(c, "Price cannot be less than 0.01")
		return false
	}

	var subcategory models.Subcategory
	if err := h.DB.Where("id = ?", req.SubcategoryID).First(&subcategory).Error; err != nil {
		domainError(c, "Subcategory not found")
		return false
	}
	return true
}

// CreateProduct adds a product to the catalog (admin only).
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		domainError(c, utils.SanitizeValidationError(err))
		return
	}
	if !h.validateProductRequest(c, &req) {
		return
	}

	product := models.Product{
		ID:            uuid.New(),
		Name:          req.Name,
		Slug:          req.Slug,
		Price:         req.Price,
		SubcategoryID: req.SubcategoryID,
		Image:         req.Image,
	}
	if err := h.DB.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			domainError(c, "A product with that name or slug already exists")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct edits a product (admin only).
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		notFound(c)
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		domainError(c, utils.SanitizeValidationError(err))
		return
	}
	if !h.validateProductRequest(c, &req) {
		return
	}

	product.Name = req.Name
	product.Slug = req.Slug
	product.Price = req.Price
	product.SubcategoryID = req.SubcategoryID
	product.Image = req.Image
	if err := h.DB.Save(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			domainError(c, "A product with that name or slug already exists")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product. Cart lines referencing it are destroyed
// in the same transaction, mirroring the cascade on the foreign key.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	var product models.Product
	if err := h.DB.Where("id = ?", id).First(&product).Error; err != nil {
		notFound(c)
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to delete product"})
		return
	}

	c.Status(http.StatusNoContent)
}
