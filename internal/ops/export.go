package ops

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/hpungsan/nutrimind/internal/config"
	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/errors"
	"github.com/hpungsan/nutrimind/internal/ledger"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path  string // optional, default: ~/.nutrimind/exports/nutrimind-<timestamp>.jsonl
	Since string // optional YYYY-MM-DD, only entries on or after this date
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string   `json:"path"`
	Count      int      `json:"count"`
	ExportedAt int64    `json:"exported_at"`
	Notices    []string `json:"notices,omitempty"`
}

// ExportHeader represents the header line in a JSONL export file.
type ExportHeader struct {
	NutriMindExport bool   `json:"_nutrimind_export"`
	SchemaVersion   string `json:"schema_version"`
	ExportedAt      int64  `json:"exported_at"`
}

// ExportRecord is one entry line in a JSONL export file.
type ExportRecord struct {
	Date       string  `json:"date"`
	Foods      string  `json:"foods"`
	SleepHours float64 `json:"sleep_hours"`
	Exercise   string  `json:"exercise"`
	Mood       int     `json:"mood"`
}

// Export writes ledger entries to a JSONL file, header line first.
func Export(store *ledger.Store, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	now := time.Now()
	exportedAt := now.Unix()

	var since time.Time
	if input.Since != "" {
		var err error
		since, err = entry.ParseDate(input.Since)
		if err != nil {
			return nil, errors.NewInvalidRequest("since must be YYYY-MM-DD")
		}
	}

	exportPath := input.Path
	if exportPath == "" {
		var err error
		exportPath, err = defaultExportPath(now)
		if err != nil {
			return nil, err
		}
	}

	// Validate ALL paths (both user-provided and default) for safety.
	if err := ValidatePath(exportPath, ".jsonl", PathCheckWrite, cfg); err != nil {
		return nil, err
	}

	entries, notices, err := store.ReadAll()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(exportPath), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Write to temp file first, then atomic rename to preserve existing file on failure.
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	header := ExportHeader{
		NutriMindExport: true,
		SchemaVersion:   "1.0",
		ExportedAt:      exportedAt,
	}
	if err := writeJSONLine(file, header); err != nil {
		return nil, err
	}

	count := 0
	for _, e := range entries {
		if !since.IsZero() && e.Date.Before(since) {
			continue
		}
		record := ExportRecord{
			Date:       e.Date.Format(entry.DateLayout),
			Foods:      e.Foods,
			SleepHours: e.SleepHours,
			Exercise:   e.Exercise,
			Mood:       e.Mood,
		}
		if err := writeJSONLine(file, record); err != nil {
			return nil, err
		}
		count++
	}

	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before atomic replace (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// Check if destination is a symlink (os.Rename would follow it)
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	// Note: On Windows, os.Rename fails if the destination exists. We intentionally
	// fail safely (preserving the existing file) instead of doing a non-atomic
	// delete+rename that could lose the original if rename fails.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows yet (choose a new path or delete the existing file)")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Count:      count,
		ExportedAt: exportedAt,
		Notices:    notices,
	}, nil
}

func writeJSONLine(file *os.File, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.NewInternal(err)
	}
	if _, err := file.Write(append(data, '\n')); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}

// defaultExportPath generates the default export path:
// ~/.nutrimind/exports/nutrimind-<timestamp>.jsonl
func defaultExportPath(now time.Time) (string, error) {
	dir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("nutrimind-%s.jsonl", now.Format("2006-01-02T150405"))
	return filepath.Join(dir, filename), nil
}
