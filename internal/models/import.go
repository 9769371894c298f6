package models

import "fmt"

// DataType is the classification of a spreadsheet detected from its headers.
type DataType int

const (
	DataTypeMixed DataType = iota
	DataTypeProduct
	DataTypeCustomer
	DataTypeVehicle
)

// String returns a human-readable name for the data type
func (t DataType) String() string {
	switch t {
	case DataTypeProduct:
		return "product"
	case DataTypeCustomer:
		return "customer"
	case DataTypeVehicle:
		return "vehicle"
	default:
		return "mixed"
	}
}

// ImportError records a single failure during a bulk import. RowNumber is the
// 1-based spreadsheet row; 0 marks a structural failure that aborted the run
// before any row was processed.
type ImportError struct {
	RowNumber int    `json:"rowNumber"`
	Field     string `json:"field"`
	Message   string `json:"message"`
	RowData   string `json:"rowData,omitempty"`
}

// ImportResult is the consolidated outcome of one bulk import run. It is
// mutated while the run progresses and immutable once returned to the caller.
// Entities persisted before a later row fails stay persisted: the engine
// deliberately offers no whole-file transaction, so a partially failed file
// still leaves its good rows committed.
type ImportResult struct {
	TotalRows        int           `json:"totalRows"`
	SuccessfulRows   int           `json:"successfulRows"`
	FailedRows       int           `json:"failedRows"`
	ProductsCreated  int           `json:"productsCreated"`
	ProductsUpdated  int           `json:"productsUpdated"`
	CustomersCreated int           `json:"customersCreated"`
	CustomersUpdated int           `json:"customersUpdated"`
	VehiclesCreated  int           `json:"vehiclesCreated"`
	VehiclesUpdated  int           `json:"vehiclesUpdated"`
	SalesCreated     int           `json:"salesCreated"`
	Errors           []ImportError `json:"errors,omitempty"`
	// NotificationSent reports the outcome of the best-effort welcome email
	// dispatch; nil when no new customers were created.
	NotificationSent *bool `json:"notificationSent,omitempty"`
}

// HasErrors reports whether the run recorded any error.
func (r *ImportResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// AddError appends a structured error to the result.
func (r *ImportResult) AddError(rowNumber int, field, message, rowData string) {
	r.Errors = append(r.Errors, ImportError{
		RowNumber: rowNumber,
		Field:     field,
		Message:   message,
		RowData:   rowData,
	})
}

// Summary returns a human-readable aggregate of the run.
func (r *ImportResult) Summary() string {
	s := fmt.Sprintf("Processed %d rows: %d succeeded, %d failed.", r.TotalRows, r.SuccessfulRows, r.FailedRows)
	if r.ProductsCreated > 0 || r.ProductsUpdated > 0 {
		s += fmt.Sprintf(" Products: %d created, %d updated.", r.ProductsCreated, r.ProductsUpdated)
	}
	if r.CustomersCreated > 0 || r.CustomersUpdated > 0 {
		s += fmt.Sprintf(" Customers: %d created, %d updated.", r.CustomersCreated, r.CustomersUpdated)
	}
	if r.VehiclesCreated > 0 || r.VehiclesUpdated > 0 {
		s += fmt.Sprintf(" Vehicles: %d created, %d updated.", r.VehiclesCreated, r.VehiclesUpdated)
	}
	if r.SalesCreated > 0 {
		s += fmt.Sprintf(" Sales: %d created.", r.SalesCreated)
	}
	return s
}
