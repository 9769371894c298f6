package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"backoffice-service/internal/models"
)

func TestClassifyProductSheet(t *testing.T) {
	fields := ResolveFields([]string{"SKU", "Product Name", "Description", "Price", "Stock"})
	assert.Equal(t, models.DataTypeProduct, Classify(fields))
}

func TestClassifyCustomerSheet(t *testing.T) {
	fields := ResolveFields([]string{"Email", "First Name", "Last Name", "Phone", "Address"})
	assert.Equal(t, models.DataTypeCustomer, Classify(fields))
}

func TestClassifyVehicleSheet(t *testing.T) {
	fields := ResolveFields([]string{"License Plate", "Brand", "Model", "Year", "Daily Rate"})
	assert.Equal(t, models.DataTypeVehicle, Classify(fields))
}

func TestClassifyVehicleByModelAndYear(t *testing.T) {
	fields := ResolveFields([]string{"Model", "Year"})
	assert.Equal(t, models.DataTypeVehicle, Classify(fields))
}

func TestClassifyMixedSheet(t *testing.T) {
	fields := ResolveFields([]string{"Product Name", "Price", "Email", "First Name", "Quantity"})
	assert.Equal(t, models.DataTypeMixed, Classify(fields))
}

func TestClassifyAmbiguousSheetDegradesToMixed(t *testing.T) {
	// Product and customer vocabulary without a quantity column.
	fields := ResolveFields([]string{"Product Name", "Email"})
	assert.Equal(t, models.DataTypeMixed, Classify(fields))
}

func TestResolveFieldsSpanishHeaders(t *testing.T) {
	fields := ResolveFields([]string{"Código", "Producto", "Precio", "Existencias"})

	assert.Equal(t, "Código", fields[FieldSKU])
	assert.Equal(t, "Producto", fields[FieldProductName])
	assert.Equal(t, "Precio", fields[FieldPrice])
	assert.Equal(t, "Existencias", fields[FieldStock])
	assert.Equal(t, models.DataTypeProduct, Classify(fields))
}

func TestResolveFieldsSpecificBeforeGeneric(t *testing.T) {
	fields := ResolveFields([]string{"Product Name", "Unit Price", "Price", "Last Name", "First Name"})

	// "Unit Price" must not consume the plain price column, and the name
	// columns must not collapse into one field.
	assert.Equal(t, "Unit Price", fields[FieldUnitPrice])
	assert.Equal(t, "Price", fields[FieldPrice])
	assert.Equal(t, "Product Name", fields[FieldProductName])
	assert.Equal(t, "Last Name", fields[FieldLastName])
	assert.Equal(t, "First Name", fields[FieldFirstName])
}

func TestResolveFieldsLeftmostColumnWins(t *testing.T) {
	fields := ResolveFields([]string{"Price", "Sale Price"})
	assert.Equal(t, "Price", fields[FieldPrice])
}

func TestResolveFieldsGenericNameFallsBackToFirstName(t *testing.T) {
	fields := ResolveFields([]string{"Name", "Email"})
	assert.Equal(t, "Name", fields[FieldFirstName])
	assert.Equal(t, models.DataTypeCustomer, Classify(fields))
}

func TestResolveFieldsIgnoresUnknownHeaders(t *testing.T) {
	fields := ResolveFields([]string{"Internal Ref", "Notes"})
	assert.Empty(t, fields)
	assert.Equal(t, models.DataTypeMixed, Classify(fields))
}
