package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	apperrors "emocli/internal/errors"
	"emocli/pkg/contracts/domain"
)

// WriteSummaryJSON writes the report summary with generation metadata.
// The output is structured for downstream dashboards and diffing.
func WriteSummaryJSON(ctx context.Context, logger *slog.Logger, path string, rpt *domain.Report) error {
	if logger == nil {
		logger = slog.Default()
	}

	logger.InfoContext(ctx, "writing summary JSON",
		slog.String("path", path),
		slog.Int("areas", len(rpt.Areas)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewOutputError("failed to create directory for JSON output", err).
			WithContext("path", path)
	}

	areaCounts := make(map[string]domain.StatusCounts, len(rpt.Areas))
	for _, area := range rpt.Areas {
		areaCounts[area.Area] = area.Counts
	}

	payload := map[string]interface{}{
		"run_id":         rpt.RunID,
		"generated_at":   rpt.GeneratedAt.Format(time.RFC3339),
		"reference_date": rpt.ReferenceDate.Format("2006-01-02"),
		"threshold_days": rpt.ThresholdDays,
		"totals":         rpt.Totals,
		"priorities":     rpt.Priorities,
		"quality":        rpt.Quality,
		"areas":          areaCounts,
		"format":         "emo_summary_v1",
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewOutputError("failed to create JSON summary file", err).
			WithContext("path", path)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(payload); err != nil {
		return apperrors.NewOutputError("failed to encode JSON summary", err).
			WithContext("path", path)
	}

	return nil
}
