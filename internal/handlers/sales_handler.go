package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"gorm.io/gorm"
)

type SalesHandler struct {
	repo      *repository.SalesRepository
	customers *repository.CustomersRepository
}

func NewSalesHandler(repo *repository.SalesRepository, customers *repository.CustomersRepository) *SalesHandler {
	return &SalesHandler{repo: repo, customers: customers}
}

// GetSales returns a paginated sale list, optionally filtered by customer
// GET /api/v1/sales
func (h *SalesHandler) GetSales(c *gin.Context) {
	page, limit := parsePagination(c)

	var customerID *uuid.UUID
	if raw := c.Query("customerId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_ID", Message: "Invalid customer ID", Field: "customerId"},
			})
			return
		}
		customerID = &id
	}

	sales, total, err := h.repo.List(page, limit, customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse{
		Success:    true,
		Data:       sales,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	})
}

// GetSale returns a single sale with its items
// GET /api/v1/sales/:id
func (h *SalesHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid sale ID"},
		})
		return
	}

	sale, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Sale not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: sale})
}

// CreateSale records a sale with its line items. The total is computed
// server-side from the item quantities and unit prices.
// POST /api/v1/sales
func (h *SalesHandler) CreateSale(c *gin.Context) {
	var req models.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid customer ID", Field: "customerId"},
		})
		return
	}

	if _, err := h.customers.GetByID(customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Customer not found", Field: "customerId"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	sale := &models.Sale{CustomerID: customerID}
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "INVALID_ID", Message: "Invalid product ID", Field: "productId"},
			})
			return
		}
		sale.Items = append(sale.Items, models.SaleItem{
			ID:        uuid.New(),
			ProductID: productID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
		sale.TotalAmount += float64(item.Quantity) * item.UnitPrice
	}

	if err := h.repo.Create(sale); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: sale})
}
