package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"
	"backoffice-service/internal/importer"
	"backoffice-service/internal/models"
)

// In-memory stores backing the import engine in handler tests.

type stubProductStore struct{ created []*models.Product }

func (s *stubProductStore) GetAll() ([]models.Product, error) { return nil, nil }
func (s *stubProductStore) Update(p *models.Product) error    { return nil }

func (s *stubProductStore) Create(p *models.Product) error {
	s.created = append(s.created, p)
	return nil
}

type stubCustomerStore struct{}

func (s *stubCustomerStore) GetAll() ([]models.Customer, error) { return nil, nil }
func (s *stubCustomerStore) Create(c *models.Customer) error    { return nil }
func (s *stubCustomerStore) Update(c *models.Customer) error    { return nil }

type stubVehicleStore struct{}

func (s *stubVehicleStore) GetAll() ([]models.Vehicle, error) { return nil, nil }
func (s *stubVehicleStore) Create(v *models.Vehicle) error    { return nil }
func (s *stubVehicleStore) Update(v *models.Vehicle) error    { return nil }

type stubSaleStore struct{}

func (s *stubSaleStore) Create(sale *models.Sale) error { return nil }

func newImportRouter(t *testing.T) (*gin.Engine, *stubProductStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := &stubProductStore{}
	svc := importer.NewService(products, &stubCustomerStore{}, &stubVehicleStore{}, &stubSaleStore{}, nil, nil)
	handler := NewImportHandler(svc, 10<<20)

	router := gin.New()
	router.POST("/api/v1/imports", handler.ImportSpreadsheet)
	return router, products
}

func buildUpload(t *testing.T, filename string, rows [][]interface{}) (*bytes.Buffer, string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	content, err := f.WriteToBuffer()
	assert.NoError(t, err)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	assert.NoError(t, err)
	_, err = part.Write(content.Bytes())
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestImportSpreadsheetEndpoint(t *testing.T) {
	router, products := newImportRouter(t)

	body, contentType := buildUpload(t, "products.xlsx", [][]interface{}{
		{"SKU", "Product Name", "Price", "Stock"},
		{"ABC-1", "Keyboard", "19.99", "5"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                `json:"success"`
		Data    models.ImportResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Data.TotalRows)
	assert.Equal(t, 1, resp.Data.SuccessfulRows)
	assert.Equal(t, 1, resp.Data.ProductsCreated)
	assert.Len(t, products.created, 1)
}

func TestImportSpreadsheetEndpointBadRowsStillReturn200(t *testing.T) {
	router, _ := newImportRouter(t)

	body, contentType := buildUpload(t, "products.xlsx", [][]interface{}{
		{"SKU", "Product Name", "Price"},
		{"ABC-1", "Keyboard", "not a number"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data models.ImportResult `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Data.FailedRows)
	assert.NotEmpty(t, resp.Data.Errors)
}

func TestImportSpreadsheetEndpointRequiresFile(t *testing.T) {
	router, _ := newImportRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FILE_REQUIRED", resp.Error.Code)
}

func TestImportSpreadsheetEndpointRejectsNonXLSX(t *testing.T) {
	router, _ := newImportRouter(t)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "products.csv")
	assert.NoError(t, err)
	_, err = part.Write([]byte("sku,name,price\n"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_FORMAT", resp.Error.Code)
}
