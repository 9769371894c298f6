package repository

import (
	"fmt"

	"github.com/google/uuid"
	"backoffice-service/internal/models"
	"gorm.io/gorm"
)

type SalesRepository struct {
	db *gorm.DB
}

func NewSalesRepository(db *gorm.DB) *SalesRepository {
	return &SalesRepository{db: db}
}

var _ SaleStore = (*SalesRepository)(nil)

// Create persists a sale together with its items in one transaction
func (r *SalesRepository) Create(sale *models.Sale) error {
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
	}
	if err := r.db.Create(sale).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

// GetByID fetches a sale with its items
func (r *SalesRepository) GetByID(id uuid.UUID) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.Preload("Items").First(&sale, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns a page of sales, newest first, optionally filtered by customer
func (r *SalesRepository) List(page, limit int, customerID *uuid.UUID) ([]models.Sale, int64, error) {
	query := r.db.Model(&models.Sale{})
	if customerID != nil {
		query = query.Where("customer_id = ?", *customerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sales []models.Sale
	if err := query.Preload("Items").Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&sales).Error; err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}
