package domain

import (
	"time"
)

// ExpiryStatus classifies an EMO record's expiration relative to a reference date.
type ExpiryStatus string

const (
	StatusExpired      ExpiryStatus = "expired"
	StatusExpiringSoon ExpiryStatus = "expiring_soon"
	StatusValid        ExpiryStatus = "valid"
)

// Priority buckets for the summary breakdown, counted over non-expired records
// by days remaining until expiration.
const (
	PriorityUrgentDays = 7
	PriorityHighDays   = 30
	PriorityMediumDays = 90
)

// EmoRecord is one employee's occupational medical exam entry.
// Records are constructed once from raw input and immutable thereafter.
type EmoRecord struct {
	EmployeeID     string    `json:"employee_id" csv:"EmployeeID" validate:"required"`
	EmployeeName   string    `json:"employee_name,omitempty" csv:"EmployeeName"`
	Area           string    `json:"area" csv:"Area" validate:"required"`
	ExamDate       time.Time `json:"exam_date" csv:"ExamDate"`
	ExpirationDate time.Time `json:"expiration_date" csv:"ExpirationDate" validate:"gtfield=ExamDate"`
}

// StatusAt classifies the record against a reference date and a lookahead
// window in days. The window boundary is inclusive: a record expiring exactly
// thresholdDays from the reference date is expiring_soon.
func (r EmoRecord) StatusAt(reference time.Time, thresholdDays int) ExpiryStatus {
	if r.ExpirationDate.Before(reference) {
		return StatusExpired
	}
	limit := reference.AddDate(0, 0, thresholdDays)
	if !r.ExpirationDate.After(limit) {
		return StatusExpiringSoon
	}
	return StatusValid
}

// DaysUntilExpiry returns the whole days from the reference date to the
// expiration date. Negative for expired records.
func (r EmoRecord) DaysUntilExpiry(reference time.Time) int {
	return int(r.ExpirationDate.Sub(reference).Hours() / 24)
}

// FieldViolation describes one constraint failure on a single field.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// RowError associates a source row with every constraint it violated.
// Row errors are accumulated during cleaning; they never abort the batch.
type RowError struct {
	Row        int              `json:"row"`
	EmployeeID string           `json:"employee_id,omitempty"`
	Violations []FieldViolation `json:"violations"`
}
