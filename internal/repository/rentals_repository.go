package repository

import (
	"fmt"

	"github.com/google/uuid"
	"backoffice-service/internal/models"
	"gorm.io/gorm"
)

type RentalsRepository struct {
	db *gorm.DB
}

func NewRentalsRepository(db *gorm.DB) *RentalsRepository {
	return &RentalsRepository{db: db}
}

// Create persists a new rental
func (r *RentalsRepository) Create(rental *models.Rental) error {
	if rental.ID == uuid.Nil {
		rental.ID = uuid.New()
	}
	if err := r.db.Create(rental).Error; err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}
	return nil
}

// Update persists changes to an existing rental
func (r *RentalsRepository) Update(rental *models.Rental) error {
	if err := r.db.Save(rental).Error; err != nil {
		return fmt.Errorf("failed to update rental: %w", err)
	}
	return nil
}

// GetByID fetches a single rental
func (r *RentalsRepository) GetByID(id uuid.UUID) (*models.Rental, error) {
	var rental models.Rental
	if err := r.db.First(&rental, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rental, nil
}

// List returns a page of rentals, optionally filtered by status
func (r *RentalsRepository) List(page, limit int, status string) ([]models.Rental, int64, error) {
	query := r.db.Model(&models.Rental{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rentals []models.Rental
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&rentals).Error; err != nil {
		return nil, 0, err
	}
	return rentals, total, nil
}

// HasActiveRentalForVehicle reports whether the vehicle is currently rented out
func (r *RentalsRepository) HasActiveRentalForVehicle(vehicleID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.Rental{}).
		Where("vehicle_id = ? AND status = ?", vehicleID, models.RentalStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
