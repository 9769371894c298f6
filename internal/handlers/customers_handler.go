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

type CustomersHandler struct {
	repo *repository.CustomersRepository
}

func NewCustomersHandler(repo *repository.CustomersRepository) *CustomersHandler {
	return &CustomersHandler{repo: repo}
}

// GetCustomers returns a paginated customer list
// GET /api/v1/customers
func (h *CustomersHandler) GetCustomers(c *gin.Context) {
	page, limit := parsePagination(c)
	search := c.Query("search")

	customers, total, err := h.repo.List(page, limit, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse{
		Success:    true,
		Data:       customers,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	})
}

// GetCustomer returns a single customer
// GET /api/v1/customers/:id
func (h *CustomersHandler) GetCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid customer ID"},
		})
		return
	}

	customer, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Customer not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: customer})
}

// CreateCustomer creates a new customer
// POST /api/v1/customers
func (h *CustomersHandler) CreateCustomer(c *gin.Context) {
	var req models.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	if existing, err := h.repo.GetByEmail(req.Email); err == nil && existing != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DUPLICATE_EMAIL", Message: "A customer with this email already exists", Field: "email"},
		})
		return
	}

	customer := &models.Customer{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Document:  req.Document,
		Phone:     req.Phone,
		Address:   req.Address,
		IsActive:  true,
	}
	if err := h.repo.Create(customer); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: customer})
}

// UpdateCustomer updates an existing customer
// PUT /api/v1/customers/:id
func (h *CustomersHandler) UpdateCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid customer ID"},
		})
		return
	}

	var req models.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	customer, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Customer not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.Document != nil {
		customer.Document = *req.Document
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	if err := h.repo.Update(customer); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: customer})
}

// DeleteCustomer soft-deletes a customer
// DELETE /api/v1/customers/:id
func (h *CustomersHandler) DeleteCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid customer ID"},
		})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Customer not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	message := "Customer deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}
