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

type VehiclesHandler struct {
	repo *repository.VehiclesRepository
}

func NewVehiclesHandler(repo *repository.VehiclesRepository) *VehiclesHandler {
	return &VehiclesHandler{repo: repo}
}

// GetVehicles returns a paginated vehicle list, optionally filtered by status
// GET /api/v1/vehicles
func (h *VehiclesHandler) GetVehicles(c *gin.Context) {
	page, limit := parsePagination(c)
	status := c.Query("status")

	vehicles, total, err := h.repo.List(page, limit, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.PaginatedResponse{
		Success:    true,
		Data:       vehicles,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	})
}

// GetVehicle returns a single vehicle
// GET /api/v1/vehicles/:id
func (h *VehiclesHandler) GetVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vehicle ID"},
		})
		return
	}

	vehicle, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Vehicle not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: vehicle})
}

// CreateVehicle creates a new vehicle
// POST /api/v1/vehicles
func (h *VehiclesHandler) CreateVehicle(c *gin.Context) {
	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	vehicleType, err := models.ParseVehicleType(req.VehicleType)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error(), Field: "vehicleType"},
		})
		return
	}

	if maxYear := time.Now().Year() + 1; req.Year < 1900 || req.Year > maxYear {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "Year is out of range", Field: "year"},
		})
		return
	}

	vehicle := &models.Vehicle{
		LicensePlate: req.LicensePlate,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		VehicleType:  vehicleType,
		HourlyRate:   req.HourlyRate,
		DailyRate:    req.DailyRate,
		WeeklyRate:   req.WeeklyRate,
		MonthlyRate:  req.MonthlyRate,
		Mileage:      req.Mileage,
		HoursUsed:    req.HoursUsed,
		Status:       models.VehicleStatusAvailable,
		IsActive:     true,
	}
	if !vehicle.HasRate() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: "At least one rental rate must be positive"},
		})
		return
	}

	if err := h.repo.Create(vehicle); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: vehicle})
}

// UpdateVehicle updates an existing vehicle
// PUT /api/v1/vehicles/:id
func (h *VehiclesHandler) UpdateVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vehicle ID"},
		})
		return
	}

	var req models.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error()},
		})
		return
	}

	vehicle, err := h.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Vehicle not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Year != nil {
		vehicle.Year = *req.Year
	}
	if req.VehicleType != nil {
		vehicleType, err := models.ParseVehicleType(*req.VehicleType)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "VALIDATION_ERROR", Message: err.Error(), Field: "vehicleType"},
			})
			return
		}
		vehicle.VehicleType = vehicleType
	}
	if req.HourlyRate != nil {
		vehicle.HourlyRate = *req.HourlyRate
	}
	if req.DailyRate != nil {
		vehicle.DailyRate = *req.DailyRate
	}
	if req.WeeklyRate != nil {
		vehicle.WeeklyRate = *req.WeeklyRate
	}
	if req.MonthlyRate != nil {
		vehicle.MonthlyRate = *req.MonthlyRate
	}
	if req.Mileage != nil {
		vehicle.Mileage = *req.Mileage
	}
	if req.HoursUsed != nil {
		vehicle.HoursUsed = *req.HoursUsed
	}
	if req.Status != nil {
		vehicle.Status = models.VehicleStatus(*req.Status)
	}
	if req.IsActive != nil {
		vehicle.IsActive = *req.IsActive
	}

	if err := h.repo.Update(vehicle); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: vehicle})
}

// DeleteVehicle soft-deletes a vehicle
// DELETE /api/v1/vehicles/:id
func (h *VehiclesHandler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "INVALID_ID", Message: "Invalid vehicle ID"},
		})
		return
	}

	if err := h.repo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "NOT_FOUND", Message: "Vehicle not found"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Error:   models.Error{Code: "DB_ERROR", Message: err.Error()},
		})
		return
	}

	message := "Vehicle deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &message})
}
