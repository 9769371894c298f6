package models

import (
	"time"

	"github.com/google/uuid"
)

// RentalStatus represents the lifecycle of a rental contract
type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
)

// RateType identifies which vehicle rate a rental is billed on
type RateType string

const (
	RateTypeHourly  RateType = "HOURLY"
	RateTypeDaily   RateType = "DAILY"
	RateTypeWeekly  RateType = "WEEKLY"
	RateTypeMonthly RateType = "MONTHLY"
)

// Rental represents a vehicle rental contract
type Rental struct {
	ID          uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VehicleID   uuid.UUID    `json:"vehicleId" gorm:"type:uuid;not null;index"`
	CustomerID  uuid.UUID    `json:"customerId" gorm:"type:uuid;not null;index"`
	StartDate   time.Time    `json:"startDate" gorm:"not null"`
	EndDate     *time.Time   `json:"endDate,omitempty"`
	RateType    RateType     `json:"rateType" gorm:"type:varchar(10);not null"`
	TotalAmount float64      `json:"totalAmount" gorm:"type:decimal(12,2);default:0"`
	Status      RentalStatus `json:"status" gorm:"type:varchar(20);default:'ACTIVE';index"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// TableName returns the table name for the Rental model
func (Rental) TableName() string {
	return "rentals"
}

// CreateRentalRequest is the payload for opening a rental
type CreateRentalRequest struct {
	VehicleID  string `json:"vehicleId" binding:"required,uuid"`
	CustomerID string `json:"customerId" binding:"required,uuid"`
	RateType   string `json:"rateType" binding:"required,oneof=HOURLY DAILY WEEKLY MONTHLY"`
}

// CloseRentalRequest is the payload for completing a rental
type CloseRentalRequest struct {
	TotalAmount float64 `json:"totalAmount" binding:"required,gt=0"`
}
