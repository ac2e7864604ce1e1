package handlers

import (
	"errors"
	"net/http"

	"freshcart-backend/models"
	"freshcart-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryHandler struct {
	DB *gorm.DB
}

// GetCategories lists categories with their subcategories nested.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	page, limit, offset := pageParams(c)

	var total int64
	h.DB.Model(&models.Category{}).Count(&total)

	var categories []models.Category
	if err := h.DB.Preload("Subcategories").
		Order("name").
		Offset(offset).Limit(limit).
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   total,
		"page":    page,
		"limit":   limit,
		"results": categories,
	})
}

type categoryRequest struct {
	Name  string `json:"name" binding:"required,max=256"`
	Slug  string `json:"slug" binding:"required,max=50"`
	Image string `json:"image"`
}

// CreateCategory adds a catalog category (admin only).
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		domainError(c, utils.SanitizeValidationError(err))
		return
	}

	category := models.Category{
		ID:    uuid.New(),
		Name:  req.Name,
		Slug:  req.Slug,
		Image: req.Image,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			domainError(c, "A category with that name or slug already exists")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to create category"})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// UpdateCategory edits a category (admin only).
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	var category models.Category
	if err := h.DB.Where("id = ?", id).First(&category).Error; err != nil {
		notFound(c)
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		domainError(c, utils.SanitizeValidationError(err))
		return
	}

	category.Name = req.Name
	category.Slug = req.Slug
	category.Image = req.Image
	if err := h.DB.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			domainError(c, "A category with that name or slug already exists")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to update category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category. Deletion is blocked while any
// subcategory still references it.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	var category models.Category
	if err := h.DB.Where("id = ?", id).First(&category).Error; err != nil {
		notFound(c)
		return
	}

	var subcategoryCount int64
	if err := h.DB.Model(&models.Subcategory{}).Where("category_id = ?", id).Count(&subcategoryCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to check category dependencies"})
		return
	}
	if subcategoryCount > 0 {
		domainError(c, "Cannot delete a category that still has subcategories")
		return
	}

	if err := h.DB.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to delete category"})
		return
	}

	c.Status(http.StatusNoContent)
}
