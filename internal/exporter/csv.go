package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	apperrors "emocli/internal/errors"
	"emocli/pkg/contracts/domain"
)

// CSVWriter provides CSV export for the per-area report and row errors.
type CSVWriter struct {
	logger     *slog.Logger
	dateFormat string
}

// NewCSVWriter creates a new CSV writer instance.
func NewCSVWriter(logger *slog.Logger, dateFormat string) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	return &CSVWriter{logger: logger, dateFormat: dateFormat}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options.
func (w *CSVWriter) WriteCSV(path string, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewOutputError("failed to create directory for CSV output", err).
			WithContext("path", path)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewOutputError("failed to create CSV file", err).
			WithContext("path", path)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewOutputError("failed to write BOM", err).
				WithContext("path", path)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewOutputError("failed to write CSV header row", err).
				WithContext("path", path)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewOutputError(fmt.Sprintf("failed to write CSV record %d", i), err).
				WithContext("path", path)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewOutputError("failed to flush CSV output", err).
			WithContext("path", path)
	}
	return nil
}

// WriteAreaReport writes the flat per-record report CSV with an area column.
func (w *CSVWriter) WriteAreaReport(ctx context.Context, path string, rpt *domain.Report) error {
	headers := []string{"Area", "EmployeeID", "EmployeeName", "ExamDate", "ExpirationDate", "Status", "DaysRemaining"}

	var rows [][]string
	for _, area := range rpt.Areas {
		for _, record := range area.Records {
			rows = append(rows, []string{
				area.Area,
				record.EmployeeID,
				record.EmployeeName,
				record.ExamDate.Format(w.dateFormat),
				record.ExpirationDate.Format(w.dateFormat),
				string(record.StatusAt(rpt.ReferenceDate, rpt.ThresholdDays)),
				strconv.Itoa(record.DaysUntilExpiry(rpt.ReferenceDate)),
			})
		}
	}

	w.logger.InfoContext(ctx, "writing area report CSV",
		slog.String("path", path),
		slog.Int("rows", len(rows)))

	return w.WriteCSV(path, WriteOptions{
		Headers:   headers,
		Records:   rows,
		BOMPrefix: true,
	})
}

// WriteRowErrors writes one line per violated constraint so rejected rows
// can be fixed at the source.
func (w *CSVWriter) WriteRowErrors(ctx context.Context, path string, rowErrors []domain.RowError) error {
	headers := []string{"Row", "EmployeeID", "Field", "Reason"}

	var rows [][]string
	for _, rowErr := range rowErrors {
		for _, violation := range rowErr.Violations {
			rows = append(rows, []string{
				strconv.Itoa(rowErr.Row),
				rowErr.EmployeeID,
				violation.Field,
				violation.Reason,
			})
		}
	}

	w.logger.InfoContext(ctx, "writing row errors CSV",
		slog.String("path", path),
		slog.Int("rejected_rows", len(rowErrors)))

	return w.WriteCSV(path, WriteOptions{
		Headers:   headers,
		Records:   rows,
		BOMPrefix: true,
	})
}
