package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(dir, "roster.csv")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
		assert.NoError(t, v.ValidateFile(path))
	})

	t.Run("missing file", func(t *testing.T) {
		err := v.ValidateFile(filepath.Join(dir, "absent.csv"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("directory", func(t *testing.T) {
		err := v.ValidateFile(dir)
		assert.ErrorContains(t, err, "is a directory")
	})
}

func TestFileValidator_ValidateRosterFile(t *testing.T) {
	v := NewFileValidator(nil)
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{"xlsx accepted", "roster.xlsx", ""},
		{"csv accepted", "roster.csv", ""},
		{"uppercase extension accepted", "ROSTER.XLSX", ""},
		{"unsupported extension", "roster.txt", "not a supported roster format"},
		{"excel lock file", "~$roster.xlsx", "temporary Excel file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

			err := v.ValidateRosterFile(path)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports", "daily")
		require.NoError(t, v.ValidateOutputDirectory(dir))

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("leaves no probe file behind", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, v.ValidateOutputDirectory(dir))

		_, err := os.Stat(filepath.Join(dir, ".write_test"))
		assert.True(t, os.IsNotExist(err))
	})
}
