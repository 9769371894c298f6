package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"backoffice-service/internal/models"
	"gorm.io/gorm"
)

type CustomersRepository struct {
	db *gorm.DB
}

func NewCustomersRepository(db *gorm.DB) *CustomersRepository {
	return &CustomersRepository{db: db}
}

var _ CustomerStore = (*CustomersRepository)(nil)

// GetAll returns every customer. The importer loads this once per run to build
// its email cache.
func (r *CustomersRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	return customers, nil
}

// Create persists a new customer
func (r *CustomersRepository) Create(customer *models.Customer) error {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update persists changes to an existing customer
func (r *CustomersRepository) Update(customer *models.Customer) error {
	if err := r.db.Save(customer).Error; err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// GetByID fetches a single customer
func (r *CustomersRepository) GetByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetByEmail fetches a customer by its natural key, case-insensitive
func (r *CustomersRepository) GetByEmail(email string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns a page of customers, optionally filtered by a name/email search term
func (r *CustomersRepository) List(page, limit int, search string) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{})
	if search != "" {
		term := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", term, term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []models.Customer
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// Delete soft-deletes a customer
func (r *CustomersRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
