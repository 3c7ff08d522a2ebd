package dataprocessing

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"emocli/internal/config"
	"emocli/pkg/contracts/domain"
)

// Cleaner validates and normalizes raw roster rows into EmoRecords.
// Malformed rows are collected as RowErrors, never aborting the batch.
type Cleaner struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// CleanResult holds the two output sequences of a cleaning pass plus the
// bookkeeping needed for the data quality report.
type CleanResult struct {
	Records    []domain.EmoRecord
	RowErrors  []domain.RowError
	TotalRows  int
	Duplicates int
}

// Quality derives the data quality summary from a cleaning pass.
func (r CleanResult) Quality() domain.DataQuality {
	q := domain.DataQuality{
		TotalRows:     r.TotalRows,
		ValidRows:     len(r.Records),
		RejectedRows:  len(r.RowErrors),
		DuplicateRows: r.Duplicates,
	}
	if q.TotalRows > 0 {
		q.PercentValid = float64(q.ValidRows) / float64(q.TotalRows) * 100
	}
	return q
}

// NewCleaner creates a cleaner with struct-tag validation wired up.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}

	v := validator.New()

	// Use JSON tag names in violation messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Cleaner{
		logger:   logger,
		validate: v,
	}
}

// Clean consumes raw rows and produces validated records in input order
// alongside per-row errors. A record is accepted only when every field
// constraint holds; all violations of a rejected row are reported, not
// just the first. Exact duplicates on (employee_id, area) keep the first
// occurrence.
func (c *Cleaner) Clean(ctx context.Context, rows []RawRow, reference time.Time) CleanResult {
	result := CleanResult{TotalRows: len(rows)}
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		record, violations := c.buildRecord(row, reference)
		if len(violations) > 0 {
			result.RowErrors = append(result.RowErrors, domain.RowError{
				Row:        row.Index,
				EmployeeID: record.EmployeeID,
				Violations: violations,
			})
			continue
		}

		key := record.EmployeeID + "\x1f" + record.Area
		if seen[key] {
			result.Duplicates++
			c.logger.DebugContext(ctx, "dropping duplicate row",
				slog.Int("row", row.Index),
				slog.String("employee_id", record.EmployeeID),
				slog.String("area", record.Area))
			continue
		}
		seen[key] = true

		result.Records = append(result.Records, record)
	}

	c.logger.InfoContext(ctx, "cleaning complete",
		slog.Int("total_rows", result.TotalRows),
		slog.Int("valid_records", len(result.Records)),
		slog.Int("rejected_rows", len(result.RowErrors)),
		slog.Int("duplicates_dropped", result.Duplicates))

	return result
}

// buildRecord constructs one EmoRecord from a raw row, accumulating every
// constraint violation.
func (c *Cleaner) buildRecord(row RawRow, reference time.Time) (domain.EmoRecord, []domain.FieldViolation) {
	var violations []domain.FieldViolation

	record := domain.EmoRecord{
		EmployeeID:   strings.TrimSpace(row.Fields[FieldEmployeeID]),
		EmployeeName: titleCase(row.Fields[FieldEmployeeName]),
		Area:         titleCase(row.Fields[FieldArea]),
	}

	examDate, examOK := c.parseDate(row.Fields[FieldExamDate])
	if !examOK {
		violations = append(violations, dateViolation("exam_date", row.Fields[FieldExamDate]))
	}
	record.ExamDate = examDate

	expirationDate, expOK := c.parseDate(row.Fields[FieldExpirationDate])
	if !expOK {
		violations = append(violations, dateViolation("expiration_date", row.Fields[FieldExpirationDate]))
	}
	record.ExpirationDate = expirationDate

	// Struct-tag validation covers required fields and the core invariant
	// expiration_date > exam_date.
	if err := c.validate.Struct(record); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				// The date ordering check is meaningless when either date
				// already failed to parse.
				if fe.Tag() == "gtfield" && (!examOK || !expOK) {
					continue
				}
				violations = append(violations, domain.FieldViolation{
					Field:  fe.Field(),
					Reason: violationReason(fe),
				})
			}
		}
	}

	if examOK && examDate.After(reference) {
		violations = append(violations, domain.FieldViolation{
			Field:  "exam_date",
			Reason: "must not be in the future",
		})
	}

	return record, violations
}

// parseDate attempts the accepted date layouts in order, normalizing the
// result to midnight UTC.
func (c *Cleaner) parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range config.DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func dateViolation(field, raw string) domain.FieldViolation {
	reason := "missing value"
	if strings.TrimSpace(raw) != "" {
		reason = "invalid date"
	}
	return domain.FieldViolation{Field: field, Reason: reason}
}

// violationReason renders one validator field error as a short reason.
func violationReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gtfield":
		return "must be after exam_date"
	default:
		return "failed " + fe.Tag() + " constraint"
	}
}

// titleCase trims the value and capitalizes each word, matching how the
// legacy tooling normalized names and areas.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
