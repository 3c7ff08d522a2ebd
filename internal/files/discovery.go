package files

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "emocli/internal/errors"
)

// rosterExtensions are the input formats the parser understands.
var rosterExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
	".csv":  true,
}

// FindLatestRoster returns the most recently modified roster file in dir,
// skipping Excel lock files ("~$" prefix). Returns a not-found error when
// the directory holds no roster.
func FindLatestRoster(logger *slog.Logger, dir string) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", apperrors.NewInputError("failed to read input directory", err).
			WithContext("dir", dir)
	}

	var latest string
	var latestMod int64

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !rosterExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = filepath.Join(dir, name)
			latestMod = info.ModTime().UnixNano()
		}
	}

	if latest == "" {
		return "", apperrors.NewNotFoundError("roster file").
			WithContext("dir", dir)
	}

	logger.Debug("discovered roster file",
		slog.String("path", latest),
		slog.String("dir", dir))

	return latest, nil
}
