package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"emocli/internal/config"
	"emocli/internal/dataprocessing"
	"emocli/internal/exporter"
	"emocli/internal/files"
	"emocli/internal/infrastructure"
	"emocli/internal/report"
	"emocli/internal/validation"
)

func main() {
	os.Exit(run())
}

func run() int {
	inPath := flag.String("in", "", "input roster file or directory (defaults to the newest roster under the data directory)")
	outDir := flag.String("out", "", "output directory for report files (defaults to data/reports relative to the executable)")
	asOf := flag.String("as-of", "", "reference date in YYYY-MM-DD format (defaults to today)")
	threshold := flag.Int("threshold", 0, "expiring-soon window in days (defaults to configured value)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		return 1
	}

	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	if !filepath.IsAbs(cfg.Logging.FilePath) {
		cfg.Logging.FilePath = paths.GetLogPath(filepath.Base(cfg.Logging.FilePath))
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	runID := infrastructure.NewRunID()
	ctx := infrastructure.WithRunID(context.Background(), runID)

	thresholdDays := cfg.Report.ThresholdDays
	if *threshold > 0 {
		thresholdDays = *threshold
	}

	reference := time.Now()
	if *asOf != "" {
		reference, err = time.Parse("2006-01-02", *asOf)
		if err != nil {
			logger.ErrorContext(ctx, "invalid -as-of date, expected YYYY-MM-DD",
				slog.String("as_of", *asOf),
				slog.String("error", err.Error()))
			return 1
		}
	}

	if *outDir == "" {
		*outDir = paths.ReportsDir
	}

	logger.InfoContext(ctx, "starting EMO expiration report run",
		slog.String("input", *inPath),
		slog.String("output_dir", *outDir),
		slog.String("reference_date", reference.Format("2006-01-02")),
		slog.Int("threshold_days", thresholdDays))

	fileValidator := validation.NewFileValidator(logger)

	input, err := resolveInput(logger, fileValidator, *inPath, paths.DataDir)
	if err != nil {
		logger.ErrorContext(ctx, "input validation failed", slog.String("error", err.Error()))
		return 1
	}

	if err := fileValidator.ValidateOutputDirectory(*outDir); err != nil {
		logger.ErrorContext(ctx, "output validation failed", slog.String("error", err.Error()))
		return 1
	}

	// Parse: a structurally unreadable file is fatal
	rows, err := dataprocessing.ParseFile(input)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read roster",
			slog.String("path", input),
			slog.String("error", err.Error()))
		return 1
	}
	logger.InfoContext(ctx, "roster parsed",
		slog.String("path", input),
		slog.Int("raw_rows", len(rows)))
	fmt.Printf("Parsed %d rows from %s\n", len(rows), input)

	// Validate and clean: bad rows are collected, never fatal
	cleaner := dataprocessing.NewCleaner(logger)
	cleaned := cleaner.Clean(ctx, rows, reference)

	for _, rowErr := range cleaned.RowErrors {
		for _, violation := range rowErr.Violations {
			logger.WarnContext(ctx, "row rejected",
				slog.Int("row", rowErr.Row),
				slog.String("employee_id", rowErr.EmployeeID),
				slog.String("field", violation.Field),
				slog.String("reason", violation.Reason))
		}
	}

	// Build the per-area report
	builder := report.NewBuilder(logger, thresholdDays)
	rpt := builder.Build(ctx, cleaned.Records, reference)
	rpt.RunID = runID
	rpt.GeneratedAt = time.Now()
	rpt.Quality = cleaned.Quality()

	// Export workbook plus CSV/JSON companions
	workbookPath := filepath.Join(*outDir, config.WorkbookFileName)
	excelWriter := exporter.NewExcelWriter(logger, cfg.Report.DateFormat)
	if err := excelWriter.WriteWorkbook(ctx, workbookPath, rpt); err != nil {
		logger.ErrorContext(ctx, "failed to export workbook",
			slog.String("path", workbookPath),
			slog.String("error", err.Error()))
		return 1
	}

	csvWriter := exporter.NewCSVWriter(logger, cfg.Report.DateFormat)
	if err := csvWriter.WriteAreaReport(ctx, filepath.Join(*outDir, config.AreaCSVFileName), rpt); err != nil {
		logger.ErrorContext(ctx, "failed to export area report CSV", slog.String("error", err.Error()))
		return 1
	}
	if err := csvWriter.WriteRowErrors(ctx, filepath.Join(*outDir, config.ErrorsCSVFileName), cleaned.RowErrors); err != nil {
		logger.ErrorContext(ctx, "failed to export row errors CSV", slog.String("error", err.Error()))
		return 1
	}
	if err := exporter.WriteSummaryJSON(ctx, logger, filepath.Join(*outDir, config.SummaryJSONFileName), rpt); err != nil {
		logger.ErrorContext(ctx, "failed to export summary JSON", slog.String("error", err.Error()))
		return 1
	}

	logger.InfoContext(ctx, "run complete",
		slog.Int("areas", len(rpt.Areas)),
		slog.Int("valid_records", len(cleaned.Records)),
		slog.Int("rejected_rows", len(cleaned.RowErrors)),
		slog.Int("expired", rpt.Totals.Expired),
		slog.Int("expiring_soon", rpt.Totals.ExpiringSoon),
		slog.String("workbook", workbookPath))

	fmt.Printf("Report written: %s\n", workbookPath)
	fmt.Printf("Areas: %d, records: %d (expired %d, expiring soon %d, valid %d)\n",
		len(rpt.Areas), rpt.Totals.Total(), rpt.Totals.Expired, rpt.Totals.ExpiringSoon, rpt.Totals.Valid)
	if len(cleaned.RowErrors) > 0 {
		fmt.Printf("Rejected rows: %d (see %s)\n",
			len(cleaned.RowErrors), filepath.Join(*outDir, config.ErrorsCSVFileName))
	}

	return 0
}

// resolveInput turns the -in flag into a concrete roster file path:
// empty means discover under the data directory, a directory means
// discover inside it, a file is validated as-is.
func resolveInput(logger *slog.Logger, v *validation.FileValidator, inPath, dataDir string) (string, error) {
	if inPath == "" {
		inPath = dataDir
	}

	info, err := os.Stat(inPath)
	if err == nil && info.IsDir() {
		discovered, err := files.FindLatestRoster(logger, inPath)
		if err != nil {
			return "", err
		}
		inPath = discovered
	}

	if err := v.ValidateRosterFile(inPath); err != nil {
		return "", err
	}
	return inPath, nil
}
