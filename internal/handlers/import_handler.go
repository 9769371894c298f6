package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"backoffice-service/internal/importer"
	"backoffice-service/internal/models"
)

type ImportHandler struct {
	importer *importer.Service
	maxBytes int64
}

func NewImportHandler(svc *importer.Service, maxBytes int64) *ImportHandler {
	return &ImportHandler{importer: svc, maxBytes: maxBytes}
}

// ImportSpreadsheet ingests an Excel workbook and reconciles its rows against
// the product, customer, vehicle and sale tables. Bad rows are collected in
// the response; they never abort the batch.
// POST /api/v1/imports
func (h *ImportHandler) ImportSpreadsheet(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "FILE_REQUIRED",
				Message: "Please upload an Excel file",
			},
		})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Error: models.Error{
				Code:    "INVALID_FORMAT",
				Message: "Only XLSX files are supported",
			},
		})
		return
	}

	result := h.importer.Import(c.Request.Context(), file)

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: result})
}
