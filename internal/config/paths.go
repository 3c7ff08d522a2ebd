package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Paths contains all the application paths.
// Every path is resolved relative to the executable directory, never the
// current working directory, so the tool behaves the same wherever it is
// launched from.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ReportsDir    string
	LogsDir       string
}

var (
	cachedPaths *Paths
	pathsOnce   sync.Once
	pathsErr    error
)

// GetPaths returns the application paths relative to the executable location.
func GetPaths() (*Paths, error) {
	pathsOnce.Do(func() {
		cachedPaths, pathsErr = resolvePaths()
	})
	return cachedPaths, pathsErr
}

func resolvePaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}

	exeDir := filepath.Dir(exe)

	dataDir := filepath.Join(exeDir, "data")
	reportsDir := filepath.Join(dataDir, "reports")
	logsDir := filepath.Join(exeDir, "logs")

	return &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		ReportsDir:    reportsDir,
		LogsDir:       logsDir,
	}, nil
}

// EnsureDirectories creates all required directories if they do not exist.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.DataDir, p.ReportsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the full path for a log file name.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// GetReportPath returns the full path for a report file name.
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// GetDataPath returns the full path for a data file name.
func (p *Paths) GetDataPath(name string) string {
	return filepath.Join(p.DataDir, name)
}

// ResetPathsForTesting clears the cached paths. Tests only.
func ResetPathsForTesting() {
	cachedPaths = nil
	pathsErr = nil
	pathsOnce = sync.Once{}
}
