package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emocli/pkg/contracts/domain"
)

func readCSVFile(t *testing.T, path string) ([]byte, [][]string) {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	content := bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	rows, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return raw, rows
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.csv")

	writer := NewCSVWriter(nil, "")
	err := writer.WriteCSV(path, WriteOptions{
		Headers:   []string{"A", "B"},
		Records:   [][]string{{"1", "2"}, {"3", "4"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	raw, rows := readCSVFile(t, path)
	assert.True(t, bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"A", "B"}, rows[0])
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestCSVWriter_WriteAreaReport(t *testing.T) {
	rpt := buildTestReport(t)
	path := filepath.Join(t.TempDir(), "emo_report_by_area.csv")

	writer := NewCSVWriter(nil, "")
	require.NoError(t, writer.WriteAreaReport(context.Background(), path, rpt))

	_, rows := readCSVFile(t, path)
	require.Len(t, rows, 4) // header plus three records

	assert.Equal(t, []string{"Area", "EmployeeID", "EmployeeName", "ExamDate", "ExpirationDate", "Status", "DaysRemaining"}, rows[0])

	// Areas come out sorted, Office before Plant
	assert.Equal(t, "Office", rows[1][0])
	assert.Equal(t, "E3", rows[1][1])
	assert.Equal(t, "Plant", rows[2][0])
	assert.Equal(t, "E1", rows[2][1])
	assert.Equal(t, string(domain.StatusExpired), rows[2][5])
	assert.Equal(t, "-14", rows[2][6])
}

func TestCSVWriter_WriteRowErrors(t *testing.T) {
	rowErrors := []domain.RowError{
		{
			Row:        4,
			EmployeeID: "E9",
			Violations: []domain.FieldViolation{
				{Field: "area", Reason: "missing value"},
				{Field: "expiration_date", Reason: "invalid date"},
			},
		},
		{
			Row:        7,
			EmployeeID: "",
			Violations: []domain.FieldViolation{
				{Field: "employee_id", Reason: "missing value"},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "emo_report_errors.csv")
	writer := NewCSVWriter(nil, "")
	require.NoError(t, writer.WriteRowErrors(context.Background(), path, rowErrors))

	_, rows := readCSVFile(t, path)
	require.Len(t, rows, 4) // header plus one line per violation
	assert.Equal(t, []string{"4", "E9", "area", "missing value"}, rows[1])
	assert.Equal(t, []string{"4", "E9", "expiration_date", "invalid date"}, rows[2])
	assert.Equal(t, []string{"7", "", "employee_id", "missing value"}, rows[3])
}

func TestCSVWriter_WriteRowErrors_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emo_report_errors.csv")
	writer := NewCSVWriter(nil, "")
	require.NoError(t, writer.WriteRowErrors(context.Background(), path, nil))

	_, rows := readCSVFile(t, path)
	require.Len(t, rows, 1) // header only
}
