package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents an item sold through the back office.
// SKU is the natural key used to reconcile spreadsheet imports.
type Product struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SKU         string         `json:"sku" gorm:"type:varchar(100);not null;uniqueIndex:idx_products_sku"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text"`
	Price       float64        `json:"price" gorm:"type:decimal(12,2);not null"`
	Stock       int            `json:"stock" gorm:"default:0"`
	ImageURL    string         `json:"imageUrl" gorm:"column:image_url;type:text"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	SKU         string  `json:"sku" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
}

// UpdateProductRequest is the payload for updating a product; nil fields are left untouched
type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
}
