package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a retail or rental customer.
// Email is the natural key used to reconcile spreadsheet imports.
type Customer struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email     string         `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:idx_customers_email"`
	FirstName string         `json:"firstName" gorm:"type:varchar(100);not null"`
	LastName  string         `json:"lastName" gorm:"type:varchar(100)"`
	Document  string         `json:"document" gorm:"type:varchar(50)"`
	Phone     string         `json:"phone" gorm:"type:varchar(50)"`
	Address   string         `json:"address" gorm:"type:text"`
	IsActive  bool           `json:"isActive" gorm:"default:true"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// FullName returns the customer's display name.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// CreateCustomerRequest is the payload for creating a customer
type CreateCustomerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Document  string `json:"document"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// UpdateCustomerRequest is the payload for updating a customer; nil fields are left untouched
type UpdateCustomerRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Document  *string `json:"document,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Address   *string `json:"address,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}
