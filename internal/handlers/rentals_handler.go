package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
	"gorm.io/gorm"
)

type RentalsHandler struct {
	repo     *repository.RentalsRepository
	vehicles *repository.VehiclesRepository
}

func NewRentalsHandler(repo *repository.RentalsRepository, vehicles *repository.VehiclesRepository) *RentalsHandler {
	return &RentalsHandler{repo: repo, vehicles: vehicles}
}

// GetRentals returns a paginated rental list, optionally filtered by status
// GET /api/v1/rentals
func (h *RentalsHandler) GetRentals(c *gin.Context) {
	page, limit := parsePagination(c)
	status := c.Query("status")

	rentals, total, err := h.repo.List(page, limit, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse{
		Success:    true,
		Data:       rentals,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	})
}

// GetRental returns a single rental
// GET /api/v1/rentals/:id
func (h *RentalsHandler) GetRental(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid rental ID"},
		})
		return
	}

	rental, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Rental not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: rental})
}

// CreateRental opens a rental contract. The vehicle must be available, carry
// a positive rate for the requested rate type, and have no other open rental.
// POST /api/v1/rentals
func (h *RentalsHandler) CreateRental(c *gin.Context) {
	var req models.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	vehicleID, _ := uuid.Parse(req.VehicleID)
	customerID, _ := uuid.Parse(req.CustomerID)

	vehicle, err := h.vehicles.GetByID(vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Vehicle not found", Field: "vehicleId"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	if vehicle.Status != models.VehicleStatusAvailable {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VEHICLE_UNAVAILABLE", Message: "Vehicle is not available for rental", Field: "vehicleId"},
		})
		return
	}

	rateType := models.RateType(req.RateType)
	if rateForType(vehicle, rateType) <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Vehicle has no rate configured for the requested rate type", Field: "rateType"},
		})
		return
	}

	active, err := h.repo.HasActiveRentalForVehicle(vehicleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}
	if active {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VEHICLE_UNAVAILABLE", Message: "Vehicle already has an active rental", Field: "vehicleId"},
		})
		return
	}

	rental := &models.Rental{
		VehicleID:  vehicleID,
		CustomerID: customerID,
		StartDate:  time.Now().UTC(),
		RateType:   rateType,
		Status:     models.RentalStatusActive,
	}
	if err := h.repo.Create(rental); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	if err := h.vehicles.UpdateStatus(vehicleID, models.VehicleStatusRented); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: rental})
}

// CloseRental completes an active rental and returns the vehicle to the
// available pool.
// POST /api/v1/rentals/:id/close
func (h *RentalsHandler) CloseRental(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid rental ID"},
		})
		return
	}

	var req models.CloseRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	rental, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Rental not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	if rental.Status != models.RentalStatusActive {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "RENTAL_NOT_ACTIVE", Message: "Rental is not active"},
		})
		return
	}

	now := time.Now().UTC()
	rental.EndDate = &now
	rental.TotalAmount = req.TotalAmount
	rental.Status = models.RentalStatusCompleted
	if err := h.repo.Update(rental); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	if err := h.vehicles.UpdateStatus(rental.VehicleID, models.VehicleStatusAvailable); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: rental})
}

func rateForType(v *models.Vehicle, rt models.RateType) float64 {
	switch rt {
	case models.RateTypeHourly:
		return v.HourlyRate
	case models.RateTypeDaily:
		return v.DailyRate
	case models.RateTypeWeekly:
		return v.WeeklyRate
	case models.RateTypeMonthly:
		return v.MonthlyRate
	}
	return 0
}
