package report

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"emocli/internal/config"
	"emocli/pkg/contracts/domain"
)

// Builder turns validated records into the per-area expiration report.
// Builders are stateless between runs; identical input and reference date
// produce identical reports.
type Builder struct {
	logger        *slog.Logger
	thresholdDays int
}

// NewBuilder creates a report builder. A non-positive threshold falls back
// to the default lookahead window.
func NewBuilder(logger *slog.Logger, thresholdDays int) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if thresholdDays <= 0 {
		thresholdDays = config.DefaultThresholdDays
	}
	return &Builder{
		logger:        logger,
		thresholdDays: thresholdDays,
	}
}

// Build groups records by area and classifies each against the reference
// date. Areas are sorted by name ascending; records within an area by
// expiration date ascending, ties broken by employee ID. Empty input
// produces an empty report set, not an error.
func (b *Builder) Build(ctx context.Context, records []domain.EmoRecord, reference time.Time) *domain.Report {
	reference = truncateToDay(reference)

	report := &domain.Report{
		ReferenceDate: reference,
		ThresholdDays: b.thresholdDays,
	}

	byArea := make(map[string][]domain.EmoRecord)
	for _, record := range records {
		byArea[record.Area] = append(byArea[record.Area], record)
	}

	areas := make([]string, 0, len(byArea))
	for area := range byArea {
		areas = append(areas, area)
	}
	sort.Strings(areas)

	for _, area := range areas {
		areaRecords := byArea[area]
		sort.SliceStable(areaRecords, func(i, j int) bool {
			if !areaRecords[i].ExpirationDate.Equal(areaRecords[j].ExpirationDate) {
				return areaRecords[i].ExpirationDate.Before(areaRecords[j].ExpirationDate)
			}
			return areaRecords[i].EmployeeID < areaRecords[j].EmployeeID
		})

		areaReport := domain.AreaReport{
			Area:    area,
			Records: areaRecords,
			Counts:  b.countStatuses(areaRecords, reference),
		}
		report.Areas = append(report.Areas, areaReport)
		report.Totals.Add(areaReport.Counts)
	}

	report.Priorities = b.priorityBreakdown(records, reference)

	b.logger.InfoContext(ctx, "report built",
		slog.Int("areas", len(report.Areas)),
		slog.Int("records", len(records)),
		slog.Int("expired", report.Totals.Expired),
		slog.Int("expiring_soon", report.Totals.ExpiringSoon),
		slog.String("reference_date", reference.Format("2006-01-02")),
		slog.Int("threshold_days", b.thresholdDays))

	return report
}

// RecordsByStatus returns all records across areas with the given status,
// ordered by expiration date ascending then employee ID. Used by the
// exporter for the Expired and Expiring Soon sheets.
func RecordsByStatus(report *domain.Report, status domain.ExpiryStatus) []domain.EmoRecord {
	var out []domain.EmoRecord
	for _, area := range report.Areas {
		for _, record := range area.Records {
			if record.StatusAt(report.ReferenceDate, report.ThresholdDays) == status {
				out = append(out, record)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ExpirationDate.Equal(out[j].ExpirationDate) {
			return out[i].ExpirationDate.Before(out[j].ExpirationDate)
		}
		return out[i].EmployeeID < out[j].EmployeeID
	})

	return out
}

// countStatuses classifies each record of an area.
func (b *Builder) countStatuses(records []domain.EmoRecord, reference time.Time) domain.StatusCounts {
	var counts domain.StatusCounts
	for _, record := range records {
		switch record.StatusAt(reference, b.thresholdDays) {
		case domain.StatusExpired:
			counts.Expired++
		case domain.StatusExpiringSoon:
			counts.ExpiringSoon++
		default:
			counts.Valid++
		}
	}
	return counts
}

// priorityBreakdown buckets all records by urgency for the summary sheet.
func (b *Builder) priorityBreakdown(records []domain.EmoRecord, reference time.Time) domain.PriorityBreakdown {
	breakdown := domain.PriorityBreakdown{Total: len(records)}

	for _, record := range records {
		days := record.DaysUntilExpiry(reference)
		switch {
		case days < 0:
			breakdown.Expired++
		case days <= domain.PriorityUrgentDays:
			breakdown.Urgent++
		case days <= domain.PriorityHighDays:
			breakdown.High++
		case days <= domain.PriorityMediumDays:
			breakdown.Medium++
		default:
			breakdown.Low++
		}
	}

	return breakdown
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
