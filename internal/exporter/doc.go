// Package exporter serializes built reports for consumption outside the
// tool.
//
// ExcelWriter produces the multi-sheet report workbook: a Summary sheet
// with totals, priority breakdown and data quality, status sheets for
// expired and expiring-soon records, the full record list, and one sheet
// per area.
//
// CSVWriter produces flat companions with a UTF-8 BOM for Excel
// compatibility: the per-record area report and the row-error listing.
//
// WriteSummaryJSON emits the machine-readable run summary.
//
// All writers treat an unwritable destination as a fatal output error;
// nothing is retried.
package exporter
