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

type SubcategoryHandler struct {
	DB *gorm.DB
}

type subcategoryRequest struct {
	Name       string    `json:"name" binding:"required,max=256"`
	Slug       string    `json:"slug" binding:"required,max=50"`
	Image      string    `json:"image"`
	CategoryID uuid.UUID `json:"category_id" binding:"required"`
}

// CreateSubcategory adds a subcategory under an existing category (admin only).
func (h *SubcategoryHandler) CreateSubcategory(c *gin.Context) {
	var req subcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		domainError(c, utils.SanitizeValidationError(err))
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
		domainError(c, "Parent category not found")
		return
	}

	subcategory := models.Subcategory{
		ID:         uuid.New(),
		Name:       req.Name,
		Slug:       req.Slug,
		Image:      req.Image,
		CategoryID: req.CategoryID,
	}
	if err := h.DB.Create(&subcategory).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			domainError(c, "A subcategory with that name or slug already exists")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to create subcategory"})
		return
	}

	c.JSON(http.StatusCreated, subcategory)
}

// UpdateSubcategory edits a subcategory (admin only).
func (h *SubcategoryHandler) UpdateSubcategory(c *gin.Context) {
	id := c.Param("id")

	var subcategory models.Subcategory
	if err := h.DB.Where("id = ?", id).First(&subcategory).Error; err != nil {
		notFound(c)
		return
	}

	var req subcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		domainError(c, utils.SanitizeValidationError(err))
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ?", req.CategoryID).First(&category).Error; err != nil {
		domainError(c, "Parent category not found")
		return
	}

	subcategory.Name = req.Name
	subcategory.Slug = req.Slug
	subcategory.Image = req.Image
	subcategory.CategoryID = req.CategoryID
	if err := h.DB.Save(&subcategory).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			domainError(c, "A subcategory with that name or slug already exists")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to update subcategory"})
		return
	}

	c.JSON(http.StatusOK, subcategory)
}

// DeleteSubcategory removes a subcategory. Deletion is blocked while any
// product still references it.
func (h *SubcategoryHandler) DeleteSubcategory(c *gin.Context) {
	id := c.Param("id")

	var subcategory models.Subcategory
	if err := h.DB.Where("id = ?", id).First(&subcategory).Error; err != nil {
		notFound(c)
		return
	}

	var productCount int64
	if err := h.DB.Model(&models.Product{}).Where("subcategory_id = ?", id).Count(&productCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to check subcategory dependencies"})
		return
	}
	if productCount > 0 {
		domainError(c, "Cannot delete a subcategory that still has products")
		return
	}

	if err := h.DB.Delete(&subcategory).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "Failed to delete subcategory"})
		return
	}

	c.Status(http.StatusNoContent)
}
