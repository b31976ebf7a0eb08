package ops

import (
	"fmt"
	"io"

	"github.com/hpungsan/nutrimind/internal/config"
	"github.com/hpungsan/nutrimind/internal/errors"
	"github.com/hpungsan/nutrimind/internal/journal"
	"github.com/hpungsan/nutrimind/internal/ledger"
)

// ImportInput contains parameters for the ImportJournal operation.
type ImportInput struct {
	Path string // required, markdown journal (.md)
}

// ImportOutput contains the result of the ImportJournal operation.
type ImportOutput struct {
	Imported int                  `json:"imported"`
	Skipped  int                  `json:"skipped"`
	Errors   []journal.ParseError `json:"errors"`
}

// ImportJournal appends entries from a markdown food journal to the ledger.
// Blocks with out-of-range values are skipped and reported; valid blocks
// around them still import.
func ImportJournal(store *ledger.Store, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if err := ValidatePath(input.Path, ".md", PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidRequest) || errors.Is(err, errors.ErrFileNotFound) {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open journal: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read journal: %w", err))
	}

	parsed, parseErrors := journal.Parse(string(data))

	imported := 0
	importErrors := parseErrors
	for _, p := range parsed {
		e := p.Entry
		if e.SleepHours < 0 || e.SleepHours > 24 {
			importErrors = append(importErrors, journal.ParseError{
				Line:    p.Line,
				Message: fmt.Sprintf("sleep_hours %.1f out of range 0-24", e.SleepHours),
			})
			continue
		}
		if e.Mood < 1 || e.Mood > 5 {
			importErrors = append(importErrors, journal.ParseError{
				Line:    p.Line,
				Message: fmt.Sprintf("mood %d out of range 1-5", e.Mood),
			})
			continue
		}
		if err := store.Append(e); err != nil {
			return nil, err
		}
		imported++
	}

	if importErrors == nil {
		importErrors = []journal.ParseError{}
	}
	return &ImportOutput{
		Imported: imported,
		Skipped:  len(importErrors),
		Errors:   importErrors,
	}, nil
}
