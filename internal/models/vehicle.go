package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleType represents the kind of rental vehicle
type VehicleType string

const (
	VehicleTypeCar        VehicleType = "CAR"
	VehicleTypeMotorcycle VehicleType = "MOTORCYCLE"
	VehicleTypeTruck      VehicleType = "TRUCK"
	VehicleTypeVan        VehicleType = "VAN"
	VehicleTypeMachinery  VehicleType = "MACHINERY"
)

// vehicleTypeAliases maps tolerated spellings (including Spanish labels seen in
// imported spreadsheets) to the canonical enumeration value.
var vehicleTypeAliases = map[string]VehicleType{
	"CAR":         VehicleTypeCar,
	"AUTO":        VehicleTypeCar,
	"CARRO":       VehicleTypeCar,
	"COCHE":       VehicleTypeCar,
	"MOTORCYCLE":  VehicleTypeMotorcycle,
	"MOTO":        VehicleTypeMotorcycle,
	"MOTOCICLETA": VehicleTypeMotorcycle,
	"TRUCK":       VehicleTypeTruck,
	"CAMION":      VehicleTypeTruck,
	"VAN":         VehicleTypeVan,
	"FURGONETA":   VehicleTypeVan,
	"MACHINERY":   VehicleTypeMachinery,
	"MAQUINARIA":  VehicleTypeMachinery,
}

// ParseVehicleType parses a vehicle type string against the known enumeration.
func ParseVehicleType(s string) (VehicleType, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if vt, ok := vehicleTypeAliases[key]; ok {
		return vt, nil
	}
	return "", fmt.Errorf("unknown vehicle type %q", s)
}

// VehicleStatus represents the availability of a vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
	VehicleStatusRetired     VehicleStatus = "RETIRED"
)

// Vehicle represents a rentable vehicle or machine.
// LicensePlate is the natural key used to reconcile spreadsheet imports.
type Vehicle struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	LicensePlate string         `json:"licensePlate" gorm:"column:license_plate;type:varchar(20);not null;uniqueIndex:idx_vehicles_license_plate"`
	Brand        string         `json:"brand" gorm:"type:varchar(100);not null"`
	Model        string         `json:"model" gorm:"type:varchar(100);not null"`
	Year         int            `json:"year" gorm:"not null"`
	VehicleType  VehicleType    `json:"vehicleType" gorm:"type:varchar(20);not null"`
	HourlyRate   float64        `json:"hourlyRate" gorm:"type:decimal(10,2);default:0"`
	DailyRate    float64        `json:"dailyRate" gorm:"type:decimal(10,2);default:0"`
	WeeklyRate   float64        `json:"weeklyRate" gorm:"type:decimal(10,2);default:0"`
	MonthlyRate  float64        `json:"monthlyRate" gorm:"type:decimal(10,2);default:0"`
	Mileage      float64        `json:"mileage" gorm:"type:decimal(12,1);default:0"`
	HoursUsed    float64        `json:"hoursUsed" gorm:"type:decimal(12,1);default:0"`
	Status       VehicleStatus  `json:"status" gorm:"type:varchar(20);default:'AVAILABLE'"`
	IsActive     bool           `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName returns the table name for the Vehicle model
func (Vehicle) TableName() string {
	return "vehicles"
}

// HasRate reports whether at least one rental rate is positive.
func (v *Vehicle) HasRate() bool {
	return v.HourlyRate > 0 || v.DailyRate > 0 || v.WeeklyRate > 0 || v.MonthlyRate > 0
}

// CreateVehicleRequest is the payload for creating a vehicle
type CreateVehicleRequest struct {
	LicensePlate string  `json:"licensePlate" binding:"required"`
	Brand        string  `json:"brand" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	Year         int     `json:"year" binding:"required"`
	VehicleType  string  `json:"vehicleType" binding:"required"`
	HourlyRate   float64 `json:"hourlyRate"`
	DailyRate    float64 `json:"dailyRate"`
	WeeklyRate   float64 `json:"weeklyRate"`
	MonthlyRate  float64 `json:"monthlyRate"`
	Mileage      float64 `json:"mileage"`
	HoursUsed    float64 `json:"hoursUsed"`
}

// UpdateVehicleRequest is the payload for updating a vehicle; nil fields are left untouched
type UpdateVehicleRequest struct {
	Brand       *string  `json:"brand,omitempty"`
	Model       *string  `json:"model,omitempty"`
	Year        *int     `json:"year,omitempty"`
	VehicleType *string  `json:"vehicleType,omitempty"`
	HourlyRate  *float64 `json:"hourlyRate,omitempty"`
	DailyRate   *float64 `json:"dailyRate,omitempty"`
	WeeklyRate  *float64 `json:"weeklyRate,omitempty"`
	MonthlyRate *float64 `json:"monthlyRate,omitempty"`
	Mileage     *float64 `json:"mileage,omitempty"`
	HoursUsed   *float64 `json:"hoursUsed,omitempty"`
	Status      *string  `json:"status,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}
