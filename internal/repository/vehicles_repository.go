package repository

import (
	"fmt"

	"github.com/google/uuid"
	"backoffice-service/internal/models"
	"gorm.io/gorm"
)

type VehiclesRepository struct {
	db *gorm.DB
}

func NewVehiclesRepository(db *gorm.DB) *VehiclesRepository {
	return &VehiclesRepository{db: db}
}

var _ VehicleStore = (*VehiclesRepository)(nil)

// GetAll returns every vehicle. The importer loads this once per run to build
// its license-plate cache.
func (r *VehiclesRepository) GetAll() ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.db.Find(&vehicles).Error; err != nil {
		return nil, fmt.Errorf("failed to load vehicles: %w", err)
	}
	return vehicles, nil
}

// Create persists a new vehicle
func (r *VehiclesRepository) Create(vehicle *models.Vehicle) error {
	if vehicle.ID == uuid.Nil {
		vehicle.ID = uuid.New()
	}
	if err := r.db.Create(vehicle).Error; err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// Update persists changes to an existing vehicle
func (r *VehiclesRepository) Update(vehicle *models.Vehicle) error {
	if err := r.db.Save(vehicle).Error; err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	return nil
}

// GetByID fetches a single vehicle
func (r *VehiclesRepository) GetByID(id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// List returns a page of vehicles, optionally filtered by status
func (r *VehiclesRepository) List(page, limit int, status string) ([]models.Vehicle, int64, error) {
	query := r.db.Model(&models.Vehicle{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []models.Vehicle
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}
	return vehicles, total, nil
}

// UpdateStatus changes a vehicle's availability status
func (r *VehiclesRepository) UpdateStatus(id uuid.UUID, status models.VehicleStatus) error {
	result := r.db.Model(&models.Vehicle{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft-deletes a vehicle
func (r *VehiclesRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Vehicle{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
