package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "emocli/internal/errors"
)

// Canonical field names produced by the parser and consumed by the cleaner.
const (
	FieldEmployeeID     = "employee_id"
	FieldEmployeeName   = "employee_name"
	FieldArea           = "area"
	FieldExamDate       = "exam_date"
	FieldExpirationDate = "expiration_date"
)

// headerAliases maps canonical field names to the header spellings seen in
// real rosters. Matching is case-insensitive on the trimmed header cell.
var headerAliases = map[string][]string{
	FieldEmployeeID:     {"employee id", "employee_id", "id", "emp id", "employee no", "employee number"},
	FieldEmployeeName:   {"employee name", "employee_name", "name", "employee", "nombre"},
	FieldArea:           {"area", "department", "unit", "sector"},
	FieldExamDate:       {"exam date", "exam_date", "exam", "emo date", "fecha emo"},
	FieldExpirationDate: {"expiration date", "expiration_date", "expiry date", "expires", "emo expiry", "emo_vence", "due date", "vence"},
}

// requiredColumns must all be present in a row for it to count as the header.
var requiredColumns = []string{FieldEmployeeID, FieldArea, FieldExamDate, FieldExpirationDate}

// RawRow is one source row keyed by canonical field name, before any
// validation. Index is the 1-based row number in the source file.
type RawRow struct {
	Index  int
	Fields map[string]string
}

// ParseFile reads an EMO roster file and extracts its raw rows. The format
// is chosen by file extension (.xlsx or .csv). A file that cannot be opened
// or contains no recognizable header row is a fatal input error; individual
// bad rows are not, they flow through to the cleaner.
func ParseFile(path string) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return ParseXLSX(path)
	case ".csv":
		return ParseCSV(path)
	default:
		return nil, apperrors.NewInputError(
			fmt.Sprintf("unsupported roster format %q", filepath.Ext(path)), nil).
			WithContext("path", path)
	}
}

// ParseXLSX reads raw rows from an Excel roster. The data sheet and header
// row are located dynamically by matching known column aliases, so column
// order and extra decoration rows do not matter.
func ParseXLSX(path string) ([]RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewInputError("failed to open roster file", err).
			WithContext("path", path)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		headerRow, columnMap := findHeaderRow(rows)
		if headerRow == -1 {
			continue
		}

		slog.Debug("Found roster data",
			slog.String("sheet", sheet),
			slog.Int("header_row", headerRow),
			slog.Int("total_rows", len(rows)))

		return extractRows(rows, headerRow, columnMap), nil
	}

	return nil, apperrors.NewInputError(
		"could not find a sheet with the required roster columns", nil).
		WithContext("path", path).
		WithContext("required", strings.Join(requiredColumns, ", "))
}

// ParseCSV reads raw rows from a CSV roster. The header must be the first
// non-empty row.
func ParseCSV(path string) ([]RawRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewInputError("failed to open roster file", err).
			WithContext("path", path)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewInputError("failed to decode roster CSV", err).
			WithContext("path", path)
	}

	if len(records) > 0 && len(records[0]) > 0 {
		// Strip the UTF-8 BOM some exporters prepend
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}

	headerRow, columnMap := findHeaderRow(records)
	if headerRow == -1 {
		return nil, apperrors.NewInputError(
			"could not find a header row with the required roster columns", nil).
			WithContext("path", path).
			WithContext("required", strings.Join(requiredColumns, ", "))
	}

	return extractRows(records, headerRow, columnMap), nil
}

// findHeaderRow scans rows for the first one that maps every required
// column, returning its index and the column position map.
func findHeaderRow(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		columnMap := mapHeader(row)
		if len(columnMap) == 0 {
			continue
		}

		complete := true
		for _, col := range requiredColumns {
			if _, ok := columnMap[col]; !ok {
				complete = false
				break
			}
		}
		if complete {
			return i, columnMap
		}
	}
	return -1, nil
}

// mapHeader maps canonical field names to column positions for one row.
func mapHeader(row []string) map[string]int {
	columnMap := make(map[string]int)
	for j, cell := range row {
		header := strings.ToLower(strings.TrimSpace(cell))
		if header == "" {
			continue
		}
		for field, aliases := range headerAliases {
			if _, taken := columnMap[field]; taken {
				continue
			}
			for _, alias := range aliases {
				if header == alias {
					columnMap[field] = j
					break
				}
			}
		}
	}
	return columnMap
}

// extractRows converts the data rows after the header into RawRows,
// skipping rows that are entirely empty.
func extractRows(rows [][]string, headerRow int, columnMap map[string]int) []RawRow {
	var out []RawRow

	for i := headerRow + 1; i < len(rows); i++ {
		row := rows[i]

		fields := make(map[string]string, len(columnMap))
		empty := true
		for field, idx := range columnMap {
			var value string
			if idx < len(row) {
				value = strings.TrimSpace(row[idx])
			}
			fields[field] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		out = append(out, RawRow{Index: i + 1, Fields: fields})
	}

	slog.Debug("Extracted raw rows", slog.Int("count", len(out)))
	return out
}
