package domain

import (
	"time"
)

// StatusCounts holds per-classification record counts. The three counts
// always sum to the total number of records they were computed over.
type StatusCounts struct {
	Expired      int `json:"expired"`
	ExpiringSoon int `json:"expiring_soon"`
	Valid        int `json:"valid"`
}

// Total returns the sum of all classification counts.
func (c StatusCounts) Total() int {
	return c.Expired + c.ExpiringSoon + c.Valid
}

// Add merges another set of counts into this one.
func (c *StatusCounts) Add(other StatusCounts) {
	c.Expired += other.Expired
	c.ExpiringSoon += other.ExpiringSoon
	c.Valid += other.Valid
}

// AreaReport aggregates the records of one organizational area.
// Records are ordered by expiration date ascending, ties broken by
// employee ID ascending.
type AreaReport struct {
	Area    string       `json:"area"`
	Records []EmoRecord  `json:"records"`
	Counts  StatusCounts `json:"counts"`
}

// PriorityBreakdown buckets records by urgency, mirroring the priority
// report of the legacy tooling: expired, then days remaining in
// (0,7], (7,30], (30,90], (90,inf).
type PriorityBreakdown struct {
	Expired int `json:"expired"`
	Urgent  int `json:"urgent_7_days"`
	High    int `json:"high_30_days"`
	Medium  int `json:"medium_90_days"`
	Low     int `json:"low_over_90_days"`
	Total   int `json:"total"`
}

// DataQuality summarizes how much of the raw input survived cleaning.
type DataQuality struct {
	TotalRows     int     `json:"total_rows"`
	ValidRows     int     `json:"valid_rows"`
	RejectedRows  int     `json:"rejected_rows"`
	DuplicateRows int     `json:"duplicate_rows"`
	PercentValid  float64 `json:"percent_valid"`
}

// Report is the complete output of one pipeline run: per-area groupings
// plus cross-area totals. Reports are derived read-only views recomputed
// per run; identical input and reference date produce identical reports.
type Report struct {
	RunID         string            `json:"run_id"`
	ReferenceDate time.Time         `json:"reference_date"`
	ThresholdDays int               `json:"threshold_days"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Areas         []AreaReport      `json:"areas"`
	Totals        StatusCounts      `json:"totals"`
	Priorities    PriorityBreakdown `json:"priorities"`
	Quality       DataQuality       `json:"quality"`
}

// TotalRecords returns the number of records across all areas.
func (r *Report) TotalRecords() int {
	n := 0
	for _, area := range r.Areas {
		n += len(area.Records)
	}
	return n
}
