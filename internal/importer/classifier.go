package importer

import (
	"strings"

	"backoffice-service/internal/models"
)

// Field is a canonical spreadsheet column recognized by the importer.
type Field int

const (
	FieldSKU Field = iota
	FieldProductName
	FieldDescription
	FieldPrice
	FieldStock
	FieldImageURL
	FieldEmail
	FieldFirstName
	FieldLastName
	FieldDocument
	FieldPhone
	FieldAddress
	FieldQuantity
	FieldUnitPrice
	FieldBrand
	FieldModel
	FieldLicensePlate
	FieldVehicleType
	FieldYear
	FieldHourlyRate
	FieldDailyRate
	FieldWeeklyRate
	FieldMonthlyRate
	FieldMileage
	FieldHoursUsed
	FieldActive
)

// synonyms maps header-label substrings to canonical fields. Order matters:
// for each header the first matching entry wins, so specific vocabulary
// ("unit price", "last name", "product name") must precede the generic terms
// it contains ("price", "name"). Labels are matched case-insensitively and
// cover the English/Spanish/Portuguese spellings seen in customer files.
var synonyms = []struct {
	substr string
	field  Field
}{
	{"license plate", FieldLicensePlate},
	{"number plate", FieldLicensePlate},
	{"placa", FieldLicensePlate},
	{"matricula", FieldLicensePlate},
	{"patente", FieldLicensePlate},
	{"vehicle type", FieldVehicleType},
	{"tipo", FieldVehicleType},
	{"unit price", FieldUnitPrice},
	{"unitario", FieldUnitPrice},
	{"hourly", FieldHourlyRate},
	{"por hora", FieldHourlyRate},
	{"daily", FieldDailyRate},
	{"diaria", FieldDailyRate},
	{"weekly", FieldWeeklyRate},
	{"semanal", FieldWeeklyRate},
	{"monthly", FieldMonthlyRate},
	{"mensual", FieldMonthlyRate},
	{"mileage", FieldMileage},
	{"kilometraje", FieldMileage},
	{"odometer", FieldMileage},
	{"hours", FieldHoursUsed},
	{"horas", FieldHoursUsed},
	{"last name", FieldLastName},
	{"apellido", FieldLastName},
	{"surname", FieldLastName},
	{"sobrenome", FieldLastName},
	{"first name", FieldFirstName},
	{"email", FieldEmail},
	{"e-mail", FieldEmail},
	{"correo", FieldEmail},
	{"mail", FieldEmail},
	{"document", FieldDocument},
	{"dni", FieldDocument},
	{"cedula", FieldDocument},
	{"cpf", FieldDocument},
	{"ruc", FieldDocument},
	{"phone", FieldPhone},
	{"telefono", FieldPhone},
	{"celular", FieldPhone},
	{"address", FieldAddress},
	{"direccion", FieldAddress},
	{"endereco", FieldAddress},
	{"description", FieldDescription},
	{"descripcion", FieldDescription},
	{"descricao", FieldDescription},
	{"image", FieldImageURL},
	{"imagen", FieldImageURL},
	{"foto", FieldImageURL},
	{"sku", FieldSKU},
	{"codigo", FieldSKU},
	{"code", FieldSKU},
	{"referencia", FieldSKU},
	{"product", FieldProductName},
	{"producto", FieldProductName},
	{"produto", FieldProductName},
	{"articulo", FieldProductName},
	{"item", FieldProductName},
	{"price", FieldPrice},
	{"precio", FieldPrice},
	{"preco", FieldPrice},
	{"stock", FieldStock},
	{"existencia", FieldStock},
	{"inventario", FieldStock},
	{"inventory", FieldStock},
	{"quantity", FieldQuantity},
	{"cantidad", FieldQuantity},
	{"qty", FieldQuantity},
	{"quantidade", FieldQuantity},
	{"brand", FieldBrand},
	{"marca", FieldBrand},
	{"model", FieldModel},
	{"modelo", FieldModel},
	{"year", FieldYear},
	{"ano", FieldYear},
	{"año", FieldYear},
	{"active", FieldActive},
	{"activo", FieldActive},
	{"customer", FieldFirstName},
	{"cliente", FieldFirstName},
	{"name", FieldFirstName},
	{"nombre", FieldFirstName},
	{"nome", FieldFirstName},
}

// ResolveFields maps each header label to at most one canonical field. When
// several headers resolve to the same field the leftmost column wins.
func ResolveFields(labels []string) map[Field]string {
	fields := make(map[Field]string)
	for _, label := range labels {
		folded := strings.ToLower(strings.TrimSpace(label))
		for _, syn := range synonyms {
			if strings.Contains(folded, syn.substr) {
				if _, taken := fields[syn.field]; !taken {
					fields[syn.field] = label
				}
				break
			}
		}
	}
	return fields
}

// Classify decides what kind of records the sheet describes from its resolved
// fields. A best-effort heuristic: anything ambiguous degrades to mixed, whose
// processor treats every field as optional.
func Classify(fields map[Field]string) models.DataType {
	has := func(f Field) bool { _, ok := fields[f]; return ok }

	if has(FieldLicensePlate) || has(FieldVehicleType) || has(FieldBrand) ||
		(has(FieldModel) && has(FieldYear)) {
		return models.DataTypeVehicle
	}

	hasProduct := has(FieldSKU) || has(FieldProductName) || has(FieldPrice) || has(FieldStock)
	hasCustomer := has(FieldEmail) || has(FieldFirstName) || has(FieldLastName)
	hasSale := has(FieldQuantity)

	switch {
	case hasProduct && hasCustomer && hasSale:
		return models.DataTypeMixed
	case hasProduct && !hasCustomer && !hasSale:
		return models.DataTypeProduct
	case hasCustomer && !hasProduct && !hasSale:
		return models.DataTypeCustomer
	default:
		return models.DataTypeMixed
	}
}
