package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"backoffice-service/internal/models"
)

// run holds the mutable state of one import: the natural-key caches, the
// accumulating result and the list of customers created during this file.
// A run is confined to a single goroutine; concurrent imports each get their
// own run.
type run struct {
	svc          *Service
	fields       map[Field]string
	result       *models.ImportResult
	products     map[string]*models.Product  // keyed by lowercased SKU
	customers    map[string]*models.Customer // keyed by lowercased email
	vehicles     map[string]*models.Vehicle  // keyed by lowercased license plate
	newCustomers []models.Customer
}

// newRun loads the existing entities once up front so row processing resolves
// natural keys against in-memory maps instead of one query per row.
func (s *Service) newRun(fields map[Field]string, result *models.ImportResult) (*run, error) {
	r := &run{
		svc:       s,
		fields:    fields,
		result:    result,
		products:  make(map[string]*models.Product),
		customers: make(map[string]*models.Customer),
		vehicles:  make(map[string]*models.Vehicle),
	}

	products, err := s.products.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range products {
		r.products[strings.ToLower(products[i].SKU)] = &products[i]
	}

	customers, err := s.customers.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range customers {
		r.customers[strings.ToLower(customers[i].Email)] = &customers[i]
	}

	vehicles, err := s.vehicles.GetAll()
	if err != nil {
		return nil, err
	}
	for i := range vehicles {
		r.vehicles[strings.ToLower(vehicles[i].LicensePlate)] = &vehicles[i]
	}

	return r, nil
}

// value reads the cell mapped to a canonical field, or "" when the sheet has
// no such column.
func (r *run) value(row RawRow, f Field) string {
	label, ok := r.fields[f]
	if !ok {
		return ""
	}
	return row.Get(label)
}

// dispatch routes a row to the processor for the classified data type. Any
// panic escaping a processor is converted into a row error so a single bad
// row can never abort the batch.
func (r *run) dispatch(dataType models.DataType, rowNum int, row RawRow) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("unexpected error: %v", rec)
		}
	}()

	switch dataType {
	case models.DataTypeProduct:
		return r.processProductRow(row)
	case models.DataTypeCustomer:
		return r.processCustomerRow(row)
	case models.DataTypeVehicle:
		r.processVehicleRow(rowNum, row)
		return nil
	default:
		r.processMixedRow(rowNum, row)
		return nil
	}
}

// processProductRow upserts one product. Name and a positive price are
// mandatory; the caller records the returned error as a failed row.
func (r *run) processProductRow(row RawRow) error {
	name := r.value(row, FieldProductName)
	if name == "" {
		return errors.New("product name is required")
	}
	price, err := parseDecimal(r.value(row, FieldPrice))
	if err != nil || price <= 0 {
		return errors.New("product price must be a positive number")
	}
	_, _, err = r.upsertProduct(row, name, price)
	return err
}

// upsertProduct finds a product by SKU (synthesizing one when the row has
// none) and creates or updates it. Creates are cached immediately so later
// rows in the same file resolve them.
func (r *run) upsertProduct(row RawRow, name string, price float64) (*models.Product, bool, error) {
	sku := r.value(row, FieldSKU)
	if sku == "" {
		sku = "SKU-" + uuid.NewString()[:8]
	}

	description := r.value(row, FieldDescription)
	imageURL := r.value(row, FieldImageURL)
	stockRaw := r.value(row, FieldStock)

	key := strings.ToLower(sku)
	if existing, ok := r.products[key]; ok {
		existing.Name = name
		existing.Price = price
		if description != "" {
			existing.Description = description
		}
		if imageURL != "" {
			existing.ImageURL = imageURL
		}
		if stockRaw != "" {
			existing.Stock = parseIntOrZero(stockRaw)
		}
		if err := r.svc.products.Update(existing); err != nil {
			return nil, false, err
		}
		r.result.ProductsUpdated++
		return existing, false, nil
	}

	product := &models.Product{
		ID:          uuid.New(),
		SKU:         sku,
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       parseIntOrZero(stockRaw),
		ImageURL:    imageURL,
	}
	if err := r.svc.products.Create(product); err != nil {
		return nil, false, err
	}
	r.products[key] = product
	r.result.ProductsCreated++
	return product, true, nil
}

// processCustomerRow upserts one customer. First name and email are mandatory.
func (r *run) processCustomerRow(row RawRow) error {
	firstName := r.value(row, FieldFirstName)
	if firstName == "" {
		return errors.New("customer first name is required")
	}
	email := r.value(row, FieldEmail)
	if email == "" {
		return errors.New("customer email is required")
	}
	_, _, err := r.upsertCustomer(row, email, firstName)
	return err
}

// upsertCustomer finds a customer by email and creates or updates it. New
// customers are queued for the post-import welcome notification.
func (r *run) upsertCustomer(row RawRow, email, firstName string) (*models.Customer, bool, error) {
	lastName := r.value(row, FieldLastName)
	document := r.value(row, FieldDocument)
	phone := r.value(row, FieldPhone)
	address := r.value(row, FieldAddress)

	key := strings.ToLower(email)
	if existing, ok := r.customers[key]; ok {
		existing.FirstName = firstName
		if lastName != "" {
			existing.LastName = lastName
		}
		if document != "" {
			existing.Document = document
		}
		if phone != "" {
			existing.Phone = phone
		}
		if address != "" {
			existing.Address = address
		}
		if err := r.svc.customers.Update(existing); err != nil {
			return nil, false, err
		}
		r.result.CustomersUpdated++
		return existing, false, nil
	}

	customer := &models.Customer{
		ID:        uuid.New(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Document:  document,
		Phone:     phone,
		Address:   address,
		IsActive:  true,
	}
	if err := r.svc.customers.Create(customer); err != nil {
		return nil, false, err
	}
	r.customers[key] = customer
	r.result.CustomersCreated++
	r.newCustomers = append(r.newCustomers, *customer)
	return customer, true, nil
}

// processVehicleRow validates and upserts one vehicle. Unlike the other
// processors it never returns an error: every failed validation is reported
// as its own field-scoped entry, and any entry blocks persistence.
func (r *run) processVehicleRow(rowNum int, row RawRow) {
	dump := row.Dump()
	valid := true

	brand := r.value(row, FieldBrand)
	if brand == "" {
		r.result.AddError(rowNum, "Brand", "brand is required", dump)
		valid = false
	}
	model := r.value(row, FieldModel)
	if model == "" {
		r.result.AddError(rowNum, "Model", "model is required", dump)
		valid = false
	}
	plate := r.value(row, FieldLicensePlate)
	if plate == "" {
		r.result.AddError(rowNum, "LicensePlate", "license plate is required", dump)
		valid = false
	}

	year := parseIntOrZero(r.value(row, FieldYear))
	if maxYear := time.Now().Year() + 1; year < 1900 || year > maxYear {
		r.result.AddError(rowNum, "Year", fmt.Sprintf("year must be between 1900 and %d", maxYear), dump)
		valid = false
	}

	vehicleType, err := models.ParseVehicleType(r.value(row, FieldVehicleType))
	if err != nil {
		r.result.AddError(rowNum, "VehicleType", err.Error(), dump)
		valid = false
	}

	hourly := parseDecimalOrZero(r.value(row, FieldHourlyRate))
	daily := parseDecimalOrZero(r.value(row, FieldDailyRate))
	weekly := parseDecimalOrZero(r.value(row, FieldWeeklyRate))
	monthly := parseDecimalOrZero(r.value(row, FieldMonthlyRate))
	if hourly <= 0 && daily <= 0 && weekly <= 0 && monthly <= 0 {
		r.result.AddError(rowNum, "Rates", "at least one rental rate must be positive", dump)
		valid = false
	}

	if !valid {
		return
	}

	mileage := parseDecimalOrZero(r.value(row, FieldMileage))
	hoursUsed := parseDecimalOrZero(r.value(row, FieldHoursUsed))
	isActive := parseActiveFlag(r.value(row, FieldActive))

	key := strings.ToLower(plate)
	if existing, ok := r.vehicles[key]; ok {
		existing.Brand = brand
		existing.Model = model
		existing.Year = year
		existing.VehicleType = vehicleType
		existing.HourlyRate = hourly
		existing.DailyRate = daily
		existing.WeeklyRate = weekly
		existing.MonthlyRate = monthly
		existing.Mileage = mileage
		existing.HoursUsed = hoursUsed
		existing.IsActive = isActive
		if err := r.svc.vehicles.Update(existing); err != nil {
			r.result.AddError(rowNum, "General", err.Error(), dump)
			return
		}
		r.result.VehiclesUpdated++
		return
	}

	vehicle := &models.Vehicle{
		ID:           uuid.New(),
		LicensePlate: plate,
		Brand:        brand,
		Model:        model,
		Year:         year,
		VehicleType:  vehicleType,
		HourlyRate:   hourly,
		DailyRate:    daily,
		WeeklyRate:   weekly,
		MonthlyRate:  monthly,
		Mileage:      mileage,
		HoursUsed:    hoursUsed,
		Status:       models.VehicleStatusAvailable,
		IsActive:     isActive,
	}
	if err := r.svc.vehicles.Create(vehicle); err != nil {
		r.result.AddError(rowNum, "General", err.Error(), dump)
		return
	}
	r.vehicles[key] = vehicle
	r.result.VehiclesCreated++
}

// processMixedRow independently attempts the product, customer and sale
// sub-steps of a row that may describe all three at once. A sub-step failure
// is recorded with its own field tag and never prevents the siblings from
// running.
func (r *run) processMixedRow(rowNum int, row RawRow) {
	dump := row.Dump()

	var product *models.Product
	if name := r.value(row, FieldProductName); name != "" {
		price, err := parseDecimal(r.value(row, FieldPrice))
		if err != nil || price <= 0 {
			r.result.AddError(rowNum, "Price", "product price must be a positive number", dump)
		} else if p, _, err := r.upsertProduct(row, name, price); err != nil {
			r.result.AddError(rowNum, "Product", err.Error(), dump)
		} else {
			product = p
		}
	}

	var customer *models.Customer
	if email := r.value(row, FieldEmail); email != "" {
		firstName := r.value(row, FieldFirstName)
		if firstName == "" {
			// Fall back to the local part of the email address.
			firstName = email
			if at := strings.Index(email, "@"); at > 0 {
				firstName = email[:at]
			}
		}
		if c, _, err := r.upsertCustomer(row, email, firstName); err != nil {
			r.result.AddError(rowNum, "Customer", err.Error(), dump)
		} else {
			customer = c
		}
	}

	// A sale needs a positive quantity and both sides of the transaction
	// resolved in this same row.
	quantity := parseIntOrZero(r.value(row, FieldQuantity))
	if quantity <= 0 || product == nil || customer == nil {
		return
	}

	unitPrice := parseDecimalOrZero(r.value(row, FieldUnitPrice))
	if unitPrice <= 0 {
		unitPrice = product.Price
	}
	if unitPrice <= 0 {
		r.result.AddError(rowNum, "UnitPrice", "unable to resolve a positive unit price", dump)
		return
	}

	sale := &models.Sale{
		ID:          uuid.New(),
		CustomerID:  customer.ID,
		TotalAmount: unitPrice * float64(quantity),
		Items: []models.SaleItem{{
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		}},
	}
	if err := r.svc.sales.Create(sale); err != nil {
		r.result.AddError(rowNum, "Sale", err.Error(), dump)
		return
	}
	r.result.SalesCreated++
}
