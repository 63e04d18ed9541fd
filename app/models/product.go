package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product.CategoryID is a soft reference: migrations do not create a foreign
// key, so deleting a category leaves its products in place.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Slug        string          `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description *string         `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Images      []string        `gorm:"type:text;not null;serializer:json" json:"images"`
	CategoryID  uint            `gorm:"not null;index" json:"categoryId"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Featured    bool            `gorm:"not null;index" json:"featured"`
	Stock       int             `gorm:"not null" json:"stock"`
	CreatedAt   time.Time       `gorm:"not null;index" json:"createdAt"`
}

// DiscountedProduct is a product listed under a running promotion.
type DiscountedProduct struct {
	Product
	DiscountPercent int             `json:"discountPercent"`
	DiscountedPrice decimal.Decimal `json:"discountedPrice"`
}
