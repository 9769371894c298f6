package repository

import "backoffice-service/internal/models"

// Store interfaces consumed by the import engine. Keeping them narrow lets the
// importer be tested against testify mocks without a database.

type ProductStore interface {
	GetAll() ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
}

type CustomerStore interface {
	GetAll() ([]models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
}

type VehicleStore interface {
	GetAll() ([]models.Vehicle, error)
	Create(vehicle *models.Vehicle) error
	Update(vehicle *models.Vehicle) error
}

type SaleStore interface {
	Create(sale *models.Sale) error
}
