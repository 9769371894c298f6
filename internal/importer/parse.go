package importer

import (
	"strconv"
	"strings"
)

// parseDecimal parses a cell value as a float, tolerating a comma decimal
// separator and currency-style thousands grouping left over from formatting.
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	normalized := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	return strconv.ParseFloat(normalized, 64)
}

// parseDecimalOrZero returns 0 for blank or unparseable cells.
func parseDecimalOrZero(s string) float64 {
	v, err := parseDecimal(s)
	if err != nil {
		return 0
	}
	return v
}

// parseIntOrZero returns 0 for blank or unparseable cells. Decimal-formatted
// integers ("5.0") still parse.
func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	v, err := parseDecimal(s)
	if err != nil {
		return 0
	}
	return int(v)
}

// parseActiveFlag interprets an optional Yes/No style cell. Blank means true.
func parseActiveFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return true
	case "yes", "y", "si", "sí", "sim", "true", "1":
		return true
	default:
		return false
	}
}
