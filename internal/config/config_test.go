package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Report.ThresholdDays)
	assert.Equal(t, "2006-01-02", cfg.Report.DateFormat)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("EMO_REPORT_THRESHOLD_DAYS", "60")
	t.Setenv("EMO_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Report.ThresholdDays)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	content := []byte("report:\n  threshold_days: 45\nlogging:\n  level: warn\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0644))

	cfg, err := Load()
	require.NoError(t, err)

	// File values win over defaults
	assert.Equal(t, 45, cfg.Report.ThresholdDays)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Fields the file leaves out still get defaults
	assert.Equal(t, "2006-01-02", cfg.Report.DateFormat)
	assert.Equal(t, "both", cfg.Logging.Output)
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	dir := chdirTemp(t)

	content := []byte("report:\n  threshold_days: 45\nlogging:\n  level: warn\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), content, 0644))
	t.Setenv("EMO_REPORT_THRESHOLD_DAYS", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Report.ThresholdDays)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidThreshold(t *testing.T) {
	chdirTemp(t)
	t.Setenv("EMO_REPORT_THRESHOLD_DAYS", "-5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
}

func TestValidate_NormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "syslog"

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
}

func TestPaths_EnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	p := &Paths{
		ExecutableDir: dir,
		DataDir:       filepath.Join(dir, "data"),
		ReportsDir:    filepath.Join(dir, "data", "reports"),
		LogsDir:       filepath.Join(dir, "logs"),
	}

	require.NoError(t, p.EnsureDirectories())

	for _, d := range []string{p.DataDir, p.ReportsDir, p.LogsDir} {
		info, err := os.Stat(d)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestPaths_Getters(t *testing.T) {
	p := &Paths{
		DataDir:    "/app/data",
		ReportsDir: "/app/data/reports",
		LogsDir:    "/app/logs",
	}

	assert.Equal(t, filepath.Join("/app/logs", "run.log"), p.GetLogPath("run.log"))
	assert.Equal(t, filepath.Join("/app/data/reports", "out.xlsx"), p.GetReportPath("out.xlsx"))
	assert.Equal(t, filepath.Join("/app/data", "roster.xlsx"), p.GetDataPath("roster.xlsx"))
}

// chdirTemp switches the working directory to a temp dir so stray
// config.yaml files cannot leak into tests.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
	return dir
}
