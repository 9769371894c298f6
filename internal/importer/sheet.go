// Package importer implements the bulk spreadsheet import engine: it decodes a
// workbook, classifies its rows from the header labels, reconciles each row
// against existing records by natural key and accumulates a consolidated
// result instead of aborting on the first bad row.
package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoData marks a workbook whose first worksheet has no data region. It is
// the only failure that aborts an import before the row loop starts.
var ErrNoData = errors.New("worksheet has no data region")

// Sheet is a decoded view of the first worksheet of an uploaded workbook.
type Sheet struct {
	labels []string // surviving header labels in column order
	cols   []int    // 0-based column index per label
	rows   [][]string
}

// OpenSheet decodes the workbook and reads its first worksheet. The header
// row is consumed here; remaining rows are exposed through Row.
func OpenSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoData
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}

	sheet := &Sheet{rows: rows[1:]}
	for col, label := range rows[0] {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		sheet.labels = append(sheet.labels, label)
		sheet.cols = append(sheet.cols, col)
	}
	if len(sheet.labels) == 0 {
		return nil, ErrNoData
	}
	return sheet, nil
}

// Labels returns the header labels in column order.
func (s *Sheet) Labels() []string {
	return s.labels
}

// RowCount returns the number of data rows, blank ones included.
func (s *Sheet) RowCount() int {
	return len(s.rows)
}

// Row materializes data row i (0-based) into a case-insensitive label→value map.
func (s *Sheet) Row(i int) RawRow {
	raw := RawRow{labels: s.labels, values: make(map[string]string, len(s.labels))}
	cells := s.rows[i]
	for j, label := range s.labels {
		var value string
		if col := s.cols[j]; col < len(cells) {
			value = strings.TrimSpace(cells[col])
		}
		raw.values[strings.ToLower(label)] = value
	}
	return raw
}

// RawRow maps header labels (case-insensitive) to trimmed cell values. It is
// transient state scoped to one row's processing.
type RawRow struct {
	labels []string
	values map[string]string
}

// Get returns the value under the given header label, or "" when absent.
func (r RawRow) Get(label string) string {
	return r.values[strings.ToLower(label)]
}

// IsEmpty reports whether every mapped cell is blank.
func (r RawRow) IsEmpty() bool {
	for _, v := range r.values {
		if v != "" {
			return false
		}
	}
	return true
}

// Dump renders up to the first five populated columns as "label: value" pairs
// for error diagnostics.
func (r RawRow) Dump() string {
	var parts []string
	for _, label := range r.labels {
		if v := r.values[strings.ToLower(label)]; v != "" {
			parts = append(parts, label+": "+v)
			if len(parts) == 5 {
				break
			}
		}
	}
	return strings.Join(parts, ", ")
}
