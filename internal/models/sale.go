package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale represents a point-of-sale transaction
type Sale struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CustomerID  uuid.UUID  `json:"customerId" gorm:"type:uuid;not null;index"`
	TotalAmount float64    `json:"totalAmount" gorm:"type:decimal(12,2);not null"`
	Items       []SaleItem `json:"items,omitempty" gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem represents a single line of a sale
type SaleItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SaleID    uuid.UUID `json:"saleId" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	UnitPrice float64   `json:"unitPrice" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// CreateSaleItemRequest is one line of a sale creation payload
type CreateSaleItemRequest struct {
	ProductID string  `json:"productId" binding:"required,uuid"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unitPrice" binding:"required,gt=0"`
}

// CreateSaleRequest is the payload for creating a sale with its items
type CreateSaleRequest struct {
	CustomerID string                  `json:"customerId" binding:"required,uuid"`
	Items      []CreateSaleItemRequest `json:"items" binding:"required,min=1,dive"`
}
