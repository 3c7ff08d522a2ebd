package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "emocli/internal/errors"
	"emocli/internal/report"
	"emocli/pkg/contracts/domain"
)

// Sheet names of the report workbook, in order.
const (
	SheetSummary      = "Summary"
	SheetExpiringSoon = "Expiring Soon"
	SheetExpired      = "Expired"
	SheetAllRecords   = "All Records"
)

var recordHeader = []string{"Employee ID", "Employee Name", "Area", "Exam Date", "Expiration Date", "Status", "Days Remaining"}

// ExcelWriter writes the report workbook: a summary sheet, status sheets,
// the full record list, and one sheet per area.
type ExcelWriter struct {
	logger     *slog.Logger
	dateFormat string
}

// NewExcelWriter creates an Excel report writer.
func NewExcelWriter(logger *slog.Logger, dateFormat string) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}
	return &ExcelWriter{logger: logger, dateFormat: dateFormat}
}

// WriteWorkbook writes the complete report workbook to path. An unwritable
// destination is a fatal output error; it is reported, not retried.
func (w *ExcelWriter) WriteWorkbook(ctx context.Context, path string, rpt *domain.Report) error {
	w.logger.InfoContext(ctx, "writing report workbook",
		slog.String("path", path),
		slog.Int("areas", len(rpt.Areas)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewOutputError("failed to create report directory", err).
			WithContext("path", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, rpt); err != nil {
		return err
	}
	if err := w.writeStatusSheet(f, SheetExpiringSoon, rpt, domain.StatusExpiringSoon); err != nil {
		return err
	}
	if err := w.writeStatusSheet(f, SheetExpired, rpt, domain.StatusExpired); err != nil {
		return err
	}
	if err := w.writeAllRecordsSheet(f, rpt); err != nil {
		return err
	}

	// Distinct areas can sanitize to the same sheet name; excelize silently
	// reuses an existing sheet, so collisions must be resolved up front.
	used := map[string]bool{
		strings.ToLower(SheetSummary):      true,
		strings.ToLower(SheetExpiringSoon): true,
		strings.ToLower(SheetExpired):      true,
		strings.ToLower(SheetAllRecords):   true,
	}
	for _, area := range rpt.Areas {
		sheet := uniqueSheetName(SanitizeSheetName(area.Area), used)
		used[strings.ToLower(sheet)] = true
		if err := w.writeAreaSheet(f, rpt, sheet, area); err != nil {
			return err
		}
	}

	// The default sheet was replaced by Summary
	if idx, err := f.GetSheetIndex(SheetSummary); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewOutputError("failed to save report workbook", err).
			WithContext("path", path)
	}

	w.logger.InfoContext(ctx, "report workbook written", slog.String("path", path))
	return nil
}

// writeSummarySheet renders the metric/value summary, priority breakdown
// and data quality section.
func (w *ExcelWriter) writeSummarySheet(f *excelize.File, rpt *domain.Report) error {
	// Rename the default sheet so Summary is always first
	defaultSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if defaultSheet != SheetSummary {
		if err := f.SetSheetName(defaultSheet, SheetSummary); err != nil {
			return apperrors.NewOutputError("failed to create summary sheet", err)
		}
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Run ID", rpt.RunID},
		{"Generated At", rpt.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Reference Date", rpt.ReferenceDate.Format(w.dateFormat)},
		{"Threshold Days", rpt.ThresholdDays},
		{"Areas", len(rpt.Areas)},
		{"Total Records", rpt.Totals.Total()},
		{"Expired", rpt.Totals.Expired},
		{"Expiring Soon", rpt.Totals.ExpiringSoon},
		{"Valid", rpt.Totals.Valid},
		{"Priority Urgent (7 Days)", rpt.Priorities.Urgent},
		{"Priority High (30 Days)", rpt.Priorities.High},
		{"Priority Medium (90 Days)", rpt.Priorities.Medium},
		{"Priority Low (Over 90 Days)", rpt.Priorities.Low},
		{"Input Rows", rpt.Quality.TotalRows},
		{"Rejected Rows", rpt.Quality.RejectedRows},
		{"Duplicate Rows Dropped", rpt.Quality.DuplicateRows},
		{"Percent Valid", fmt.Sprintf("%.2f", rpt.Quality.PercentValid)},
	}

	return w.writeRows(f, SheetSummary, rows)
}

// writeStatusSheet renders all records of one classification across areas,
// soonest expiration first.
func (w *ExcelWriter) writeStatusSheet(f *excelize.File, sheet string, rpt *domain.Report, status domain.ExpiryStatus) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.NewOutputError("failed to create sheet "+sheet, err)
	}

	records := report.RecordsByStatus(rpt, status)
	return w.writeRecordRows(f, sheet, rpt, records)
}

// writeAllRecordsSheet renders every accepted record grouped by area order.
func (w *ExcelWriter) writeAllRecordsSheet(f *excelize.File, rpt *domain.Report) error {
	if _, err := f.NewSheet(SheetAllRecords); err != nil {
		return apperrors.NewOutputError("failed to create sheet "+SheetAllRecords, err)
	}

	var records []domain.EmoRecord
	for _, area := range rpt.Areas {
		records = append(records, area.Records...)
	}
	return w.writeRecordRows(f, SheetAllRecords, rpt, records)
}

// writeAreaSheet renders one area's records on its own sheet.
func (w *ExcelWriter) writeAreaSheet(f *excelize.File, rpt *domain.Report, sheet string, area domain.AreaReport) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return apperrors.NewOutputError("failed to create area sheet "+sheet, err).
			WithContext("area", area.Area)
	}
	return w.writeRecordRows(f, sheet, rpt, area.Records)
}

// writeRecordRows writes the standard record header plus one row per record.
func (w *ExcelWriter) writeRecordRows(f *excelize.File, sheet string, rpt *domain.Report, records []domain.EmoRecord) error {
	rows := make([][]interface{}, 0, len(records)+1)

	header := make([]interface{}, len(recordHeader))
	for i, h := range recordHeader {
		header[i] = h
	}
	rows = append(rows, header)

	for _, record := range records {
		rows = append(rows, []interface{}{
			record.EmployeeID,
			record.EmployeeName,
			record.Area,
			record.ExamDate.Format(w.dateFormat),
			record.ExpirationDate.Format(w.dateFormat),
			string(record.StatusAt(rpt.ReferenceDate, rpt.ThresholdDays)),
			record.DaysUntilExpiry(rpt.ReferenceDate),
		})
	}

	return w.writeRows(f, sheet, rows)
}

// writeRows writes a rectangular block of values starting at A1.
func (w *ExcelWriter) writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return apperrors.NewOutputError("failed to compute cell coordinates", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return apperrors.NewOutputError("failed to write cell", err).
					WithContext("sheet", sheet).
					WithContext("cell", cell)
			}
		}
	}
	return nil
}
