package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MinPrice is the lowest valid product price (one cent).
var MinPrice = decimal.New(1, -2)

type Product struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name          string          `gorm:"uniqueIndex;not null" json:"name"`
	Slug          string          `gorm:"uniqueIndex;not null" json:"slug"`
	Price         decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	SubcategoryID uuid.UUID       `gorm:"type:uuid;not null;index" json:"subcategory_id"`
	Subcategory   *Subcategory    `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`
	Image         string          `json:"image"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
