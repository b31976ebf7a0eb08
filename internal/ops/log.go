package ops

import (
	"strings"

	"github.com/hpungsan/nutrimind/internal/advice"
	"github.com/hpungsan/nutrimind/internal/diversity"
	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/errors"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// LogInput contains parameters for the Log operation.
type LogInput struct {
	Date       string  // optional, YYYY-MM-DD, default: today
	Foods      string  // comma-separated free text, may be empty
	SleepHours float64 // 0-24
	Exercise   string  // free text, e.g. "45 min caminata"
	Mood       int     // 1-5
}

// LogOutput contains the result of the Log operation: the stored entry plus
// the recomputed weekly state and the advisories for the submission day.
type LogOutput struct {
	Entry      entry.DailyEntry  `json:"entry"`
	Week       WeekSummary       `json:"week"`
	Advisories []advice.Advisory `json:"advisories"`
	Unknown    []string          `json:"unknown_foods,omitempty"`
	Notices    []string          `json:"notices,omitempty"`
}

// Log validates and appends one daily entry, then recomputes the week.
// Several entries may share a date; they merge during aggregation.
func Log(store *ledger.Store, tax *taxonomy.Taxonomy, input LogInput) (*LogOutput, error) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, err
	}
	if input.SleepHours < 0 || input.SleepHours > 24 {
		return nil, errors.NewInvalidRequest("sleep_hours must be between 0 and 24")
	}
	if input.Mood < 1 || input.Mood > 5 {
		return nil, errors.NewInvalidRequest("mood must be between 1 and 5")
	}

	e := entry.DailyEntry{
		Date:       date,
		Foods:      strings.TrimSpace(input.Foods),
		SleepHours: input.SleepHours,
		Exercise:   strings.TrimSpace(input.Exercise),
		Mood:       input.Mood,
	}

	// Tokens outside the taxonomy are stored anyway (the ledger keeps what
	// the user typed) but flagged so typos surface immediately.
	var unknown []string
	for _, token := range e.FoodSet() {
		if !tax.Contains(token) {
			unknown = append(unknown, token)
		}
	}

	if err := store.Append(e); err != nil {
		return nil, err
	}

	entries, notices, err := store.ReadAll()
	if err != nil {
		return nil, err
	}

	week := diversity.Aggregate(entries, tax, date)
	advisories, _ := adviseFor(tax, entries, date, week)

	return &LogOutput{
		Entry:      e,
		Week:       newWeekSummary(week),
		Advisories: advisories,
		Unknown:    unknown,
		Notices:    notices,
	}, nil
}
