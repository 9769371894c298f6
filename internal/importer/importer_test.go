package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/xuri/excelize/v2"
	"backoffice-service/internal/models"
	"backoffice-service/internal/repository"
)

// MockProductStore is a mock implementation of repository.ProductStore
type MockProductStore struct {
	mock.Mock
}

var _ repository.ProductStore = (*MockProductStore)(nil)

func (m *MockProductStore) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductStore) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductStore) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

// MockCustomerStore is a mock implementation of repository.CustomerStore
type MockCustomerStore struct {
	mock.Mock
}

var _ repository.CustomerStore = (*MockCustomerStore)(nil)

func (m *MockCustomerStore) GetAll() ([]models.Customer, error) {
	args := m.Called()
	return args.Get(0).([]models.Customer), args.Error(1)
}

func (m *MockCustomerStore) Create(customer *models.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}

func (m *MockCustomerStore) Update(customer *models.Customer) error {
	args := m.Called(customer)
	return args.Error(0)
}

// MockVehicleStore is a mock implementation of repository.VehicleStore
type MockVehicleStore struct {
	mock.Mock
}

var _ repository.VehicleStore = (*MockVehicleStore)(nil)

func (m *MockVehicleStore) GetAll() ([]models.Vehicle, error) {
	args := m.Called()
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleStore) Create(vehicle *models.Vehicle) error {
	args := m.Called(vehicle)
	return args.Error(0)
}

func (m *MockVehicleStore) Update(vehicle *models.Vehicle) error {
	args := m.Called(vehicle)
	return args.Error(0)
}

// MockSaleStore is a mock implementation of repository.SaleStore
type MockSaleStore struct {
	mock.Mock
}

var _ repository.SaleStore = (*MockSaleStore)(nil)

func (m *MockSaleStore) Create(sale *models.Sale) error {
	args := m.Called(sale)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

var _ Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) SendBulkWelcomeEmails(ctx context.Context, customers []models.Customer) error {
	args := m.Called(ctx, customers)
	return args.Error(0)
}

type testStores struct {
	products  *MockProductStore
	customers *MockCustomerStore
	vehicles  *MockVehicleStore
	sales     *MockSaleStore
	notifier  *MockNotifier
}

// newTestService wires a Service over fresh mocks. Tests seed the initial
// tables through seed; nil slices mean empty tables.
func newTestService(seed func(*testStores)) (*Service, *testStores) {
	stores := &testStores{
		products:  new(MockProductStore),
		customers: new(MockCustomerStore),
		vehicles:  new(MockVehicleStore),
		sales:     new(MockSaleStore),
		notifier:  new(MockNotifier),
	}
	if seed != nil {
		seed(stores)
	}
	stores.products.On("GetAll").Return([]models.Product{}, nil).Maybe()
	stores.customers.On("GetAll").Return([]models.Customer{}, nil).Maybe()
	stores.vehicles.On("GetAll").Return([]models.Vehicle{}, nil).Maybe()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := NewService(stores.products, stores.customers, stores.vehicles, stores.sales, stores.notifier, logger)
	return svc, stores
}

// buildWorkbook renders rows (header first) into an in-memory XLSX file.
func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		assert.NoError(t, err)
		assert.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	assert.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestImportProductSheetCreatesProducts(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.products.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"SKU", "Product Name", "Price", "Stock"},
		{"ABC-1", "Keyboard", "19.99", "5"},
		{"ABC-2", "Mouse", "9.50", "12"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 2, result.SuccessfulRows)
	assert.Equal(t, 0, result.FailedRows)
	assert.Equal(t, 2, result.ProductsCreated)
	assert.False(t, result.HasErrors())
	stores.products.AssertNumberOfCalls(t, "Create", 2)
}

func TestImportUpdatesExistingProductBySKU(t *testing.T) {
	svc, stores := newTestService(func(s *testStores) {
		s.products.On("GetAll").Return([]models.Product{
			{SKU: "ABC-1", Name: "Old Keyboard", Price: 10},
		}, nil)
	})
	stores.products.On("Update", mock.AnythingOfType("*models.Product")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"SKU", "Product Name", "Price", "Stock"},
		{"abc-1", "New Keyboard", "24.99", "7"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.SuccessfulRows)
	assert.Equal(t, 0, result.ProductsCreated)
	assert.Equal(t, 1, result.ProductsUpdated)
	stores.products.AssertCalled(t, "Update", mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "New Keyboard" && p.Price == 24.99 && p.Stock == 7
	}))
}

func TestImportRepeatedSKUInSameFileCreatesThenUpdates(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.products.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)
	stores.products.On("Update", mock.AnythingOfType("*models.Product")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"SKU", "Product Name", "Price"},
		{"ABC-1", "Keyboard", "19.99"},
		{"ABC-1", "Keyboard v2", "21.99"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.ProductsCreated)
	assert.Equal(t, 1, result.ProductsUpdated)
	assert.Equal(t, 2, result.SuccessfulRows)
}

func TestImportProductRowWithoutPriceFails(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.products.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"SKU", "Product Name", "Price"},
		{"ABC-1", "Keyboard", "19.99"},
		{"ABC-2", "Mouse", ""},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 2, result.TotalRows)
	assert.Equal(t, 1, result.SuccessfulRows)
	assert.Equal(t, 1, result.FailedRows)
	assert.Equal(t, 1, result.ProductsCreated)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].RowNumber)
	assert.Contains(t, result.Errors[0].Message, "price")
}

func TestImportSkipsEmptyRows(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.products.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"SKU", "Product Name", "Price"},
		{"ABC-1", "Keyboard", "19.99"},
		{"", "", ""},
		{"ABC-2", "Mouse", "9.50"},
	})

	result := svc.Import(context.Background(), wb)

	// The blank row counts toward the total but is neither a success nor a
	// failure.
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 2, result.SuccessfulRows)
	assert.Equal(t, 0, result.FailedRows)
}

func TestImportCustomerSheetSendsWelcomeEmails(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.customers.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil)
	stores.notifier.On("SendBulkWelcomeEmails", mock.Anything, mock.AnythingOfType("[]models.Customer")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"First Name", "Last Name", "Email", "Phone"},
		{"Ana", "García", "ana@example.com", "555-0101"},
		{"Luis", "Pérez", "luis@example.com", "555-0102"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 2, result.CustomersCreated)
	assert.NotNil(t, result.NotificationSent)
	assert.True(t, *result.NotificationSent)
	stores.notifier.AssertCalled(t, "SendBulkWelcomeEmails", mock.Anything, mock.MatchedBy(func(customers []models.Customer) bool {
		return len(customers) == 2
	}))
}

func TestImportNotificationFailureDoesNotFailRows(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.customers.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil)
	stores.notifier.On("SendBulkWelcomeEmails", mock.Anything, mock.Anything).Return(errors.New("notification service unavailable"))

	wb := buildWorkbook(t, [][]interface{}{
		{"First Name", "Email"},
		{"Ana", "ana@example.com"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.SuccessfulRows)
	assert.Equal(t, 0, result.FailedRows)
	assert.NotNil(t, result.NotificationSent)
	assert.False(t, *result.NotificationSent)
}

func TestImportNoNotificationWhenOnlyUpdates(t *testing.T) {
	svc, stores := newTestService(func(s *testStores) {
		s.customers.On("GetAll").Return([]models.Customer{
			{Email: "ana@example.com", FirstName: "Ana"},
		}, nil)
	})
	stores.customers.On("Update", mock.AnythingOfType("*models.Customer")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"First Name", "Email", "Phone"},
		{"Ana", "ana@example.com", "555-0101"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.CustomersUpdated)
	assert.Nil(t, result.NotificationSent)
	stores.notifier.AssertNotCalled(t, "SendBulkWelcomeEmails", mock.Anything, mock.Anything)
}

func TestImportVehicleSheet(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.vehicles.On("Create", mock.AnythingOfType("*models.Vehicle")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"License Plate", "Brand", "Model", "Year", "Vehicle Type", "Daily Rate"},
		{"ABC-123", "Toyota", "Hilux", "2022", "Truck", "150"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.VehiclesCreated)
	assert.Equal(t, 1, result.SuccessfulRows)
	stores.vehicles.AssertCalled(t, "Create", mock.MatchedBy(func(v *models.Vehicle) bool {
		return v.LicensePlate == "ABC-123" &&
			v.VehicleType == models.VehicleTypeTruck &&
			v.Status == models.VehicleStatusAvailable &&
			v.DailyRate == 150
	}))
}

func TestImportUpdatesExistingVehicleByPlate(t *testing.T) {
	svc, stores := newTestService(func(s *testStores) {
		s.vehicles.On("GetAll").Return([]models.Vehicle{
			{LicensePlate: "ABC-123", Brand: "Toyota", Model: "Hilux", Year: 2018, VehicleType: models.VehicleTypeTruck, DailyRate: 120},
		}, nil)
	})
	stores.vehicles.On("Update", mock.AnythingOfType("*models.Vehicle")).Return(nil)

	// Plate case differs from the stored record; reimporting must reconcile,
	// not duplicate.
	wb := buildWorkbook(t, [][]interface{}{
		{"License Plate", "Brand", "Model", "Year", "Vehicle Type", "Daily Rate"},
		{"abc-123", "Toyota", "Hilux", "2023", "Truck", "175"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.SuccessfulRows)
	assert.Equal(t, 0, result.VehiclesCreated)
	assert.Equal(t, 1, result.VehiclesUpdated)
	stores.vehicles.AssertCalled(t, "Update", mock.MatchedBy(func(v *models.Vehicle) bool {
		return v.LicensePlate == "ABC-123" && v.Year == 2023 && v.DailyRate == 175
	}))
	stores.vehicles.AssertNotCalled(t, "Create", mock.Anything)
}

func TestImportVehicleRowWithBadYearReportsFieldError(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.vehicles.On("Create", mock.AnythingOfType("*models.Vehicle")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"License Plate", "Brand", "Model", "Year", "Vehicle Type", "Daily Rate"},
		{"ABC-123", "Toyota", "Hilux", "1800", "Truck", "150"},
		{"DEF-456", "Ford", "Transit", "2021", "Van", "90"},
	})

	result := svc.Import(context.Background(), wb)

	// The bad row reports exactly one field error and persists nothing; the
	// sibling row still goes through.
	assert.Equal(t, 1, result.FailedRows)
	assert.Equal(t, 1, result.SuccessfulRows)
	assert.Equal(t, 1, result.VehiclesCreated)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].RowNumber)
	assert.Equal(t, "Year", result.Errors[0].Field)
	stores.vehicles.AssertNumberOfCalls(t, "Create", 1)
}

func TestImportVehicleRowCollectsAllFieldErrors(t *testing.T) {
	svc, _ := newTestService(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"License Plate", "Brand", "Model", "Year", "Vehicle Type", "Daily Rate"},
		{"", "Toyota", "", "1800", "Spaceship", ""},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.FailedRows)
	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"LicensePlate", "Model", "Year", "VehicleType", "Rates"}, fields)
}

func TestImportMixedSheetCreatesSale(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.products.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)
	stores.customers.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil)
	stores.sales.On("Create", mock.AnythingOfType("*models.Sale")).Return(nil)
	stores.notifier.On("SendBulkWelcomeEmails", mock.Anything, mock.Anything).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"Product Name", "Price", "First Name", "Email", "Quantity"},
		{"Keyboard", "19.99", "Ana", "ana@example.com", "3"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.ProductsCreated)
	assert.Equal(t, 1, result.CustomersCreated)
	assert.Equal(t, 1, result.SalesCreated)
	assert.Equal(t, 1, result.SuccessfulRows)
	stores.sales.AssertCalled(t, "Create", mock.MatchedBy(func(s *models.Sale) bool {
		return len(s.Items) == 1 &&
			s.Items[0].Quantity == 3 &&
			s.Items[0].UnitPrice == 19.99 &&
			s.TotalAmount == 19.99*3
	}))
}

func TestImportMixedRowWithoutQuantitySkipsSale(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.products.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)
	stores.customers.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil)
	stores.notifier.On("SendBulkWelcomeEmails", mock.Anything, mock.Anything).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"Product Name", "Price", "First Name", "Email", "Quantity"},
		{"Keyboard", "19.99", "Ana", "ana@example.com", ""},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.SuccessfulRows)
	assert.Equal(t, 0, result.SalesCreated)
	stores.sales.AssertNotCalled(t, "Create", mock.Anything)
}

func TestImportMixedRowFallsBackToEmailLocalPart(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.products.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)
	stores.customers.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil)
	stores.notifier.On("SendBulkWelcomeEmails", mock.Anything, mock.Anything).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"Product Name", "Price", "Email", "Quantity"},
		{"Keyboard", "19.99", "ana.garcia@example.com", ""},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.CustomersCreated)
	stores.customers.AssertCalled(t, "Create", mock.MatchedBy(func(c *models.Customer) bool {
		return c.FirstName == "ana.garcia" && c.Email == "ana.garcia@example.com"
	}))
}

func TestImportMixedRowBadPriceStillCreatesCustomer(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.customers.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil)
	stores.notifier.On("SendBulkWelcomeEmails", mock.Anything, mock.Anything).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"Product Name", "Price", "First Name", "Email", "Quantity"},
		{"Keyboard", "free", "Ana", "ana@example.com", "2"},
	})

	result := svc.Import(context.Background(), wb)

	// The product sub-step fails but the customer sub-step still runs. No
	// sale without a resolved product.
	assert.Equal(t, 1, result.FailedRows)
	assert.Equal(t, 1, result.CustomersCreated)
	assert.Equal(t, 0, result.SalesCreated)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, "Price", result.Errors[0].Field)
	stores.products.AssertNotCalled(t, "Create", mock.Anything)
}

func TestImportEmptyWorkbookReportsStructuralError(t *testing.T) {
	svc, _ := newTestService(nil)

	wb := buildWorkbook(t, nil)

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 0, result.TotalRows)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].RowNumber)
}

func TestImportHeaderOnlyWorkbook(t *testing.T) {
	svc, _ := newTestService(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"SKU", "Product Name", "Price"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 0, result.TotalRows)
	assert.Equal(t, 0, result.SuccessfulRows)
	assert.False(t, result.HasErrors())
}

func TestImportGarbageInputReportsStructuralError(t *testing.T) {
	svc, _ := newTestService(nil)

	result := svc.Import(context.Background(), bytes.NewReader([]byte("not a spreadsheet")))

	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].RowNumber)
	assert.Equal(t, "General", result.Errors[0].Field)
}

func TestImportCancelledContextReturnsPartialResult(t *testing.T) {
	svc, _ := newTestService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wb := buildWorkbook(t, [][]interface{}{
		{"SKU", "Product Name", "Price"},
		{"ABC-1", "Keyboard", "19.99"},
	})

	result := svc.Import(ctx, wb)

	assert.Equal(t, 1, result.TotalRows)
	assert.Equal(t, 0, result.SuccessfulRows)
	assert.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "cancelled")
}

func TestImportCancellationStillSendsWelcomeEmails(t *testing.T) {
	svc, stores := newTestService(nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel after the first customer is persisted; the second row must not
	// run, but the welcome dispatch for the first still goes out on a live
	// context.
	stores.customers.On("Create", mock.AnythingOfType("*models.Customer")).Return(nil).Run(func(mock.Arguments) {
		cancel()
	})
	stores.notifier.On("SendBulkWelcomeEmails", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), mock.Anything).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"First Name", "Email"},
		{"Ana", "ana@example.com"},
		{"Luis", "luis@example.com"},
	})

	result := svc.Import(ctx, wb)

	assert.Equal(t, 1, result.CustomersCreated)
	assert.NotNil(t, result.NotificationSent)
	assert.True(t, *result.NotificationSent)
	stores.notifier.AssertNumberOfCalls(t, "SendBulkWelcomeEmails", 1)
}

func TestImportStoreErrorFailsRowOnly(t *testing.T) {
	svc, stores := newTestService(nil)
	stores.products.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.SKU == "ABC-1"
	})).Return(errors.New("duplicate key value violates unique constraint"))
	stores.products.On("Create", mock.AnythingOfType("*models.Product")).Return(nil)

	wb := buildWorkbook(t, [][]interface{}{
		{"SKU", "Product Name", "Price"},
		{"ABC-1", "Keyboard", "19.99"},
		{"ABC-2", "Mouse", "9.50"},
	})

	result := svc.Import(context.Background(), wb)

	assert.Equal(t, 1, result.FailedRows)
	assert.Equal(t, 1, result.SuccessfulRows)
	assert.Equal(t, 1, result.ProductsCreated)
	assert.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].RowNumber)
}
