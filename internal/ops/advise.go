package ops

import (
	"fmt"

	"github.com/hpungsan/nutrimind/internal/advice"
	"github.com/hpungsan/nutrimind/internal/diversity"
	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// AdviseInput contains parameters for the Advise operation.
type AdviseInput struct {
	Date string // optional, YYYY-MM-DD, default: today
}

// AdviseOutput contains the result of the Advise operation.
type AdviseOutput struct {
	Date       string            `json:"date"`
	HasEntry   bool              `json:"has_entry"`
	Advisories []advice.Advisory `json:"advisories"`
	Notices    []string          `json:"notices,omitempty"`
}

// Advise re-evaluates the advisory rules for a date. When the date has
// several entries they merge into one day view (foods union, scalars from
// the last row). A day without entries still gets the week-level advisory.
func Advise(store *ledger.Store, tax *taxonomy.Taxonomy, input AdviseInput) (*AdviseOutput, error) {
	date, err := resolveDate(input.Date)
	if err != nil {
		return nil, err
	}

	entries, notices, err := store.ReadAll()
	if err != nil {
		return nil, err
	}

	week := diversity.Aggregate(entries, tax, date)
	advisories, hasEntry := adviseFor(tax, entries, date, week)
	if !hasEntry {
		notices = append(notices, fmt.Sprintf("no entry for %s", date.Format(entry.DateLayout)))
	}

	return &AdviseOutput{
		Date:       date.Format(entry.DateLayout),
		HasEntry:   hasEntry,
		Advisories: advisories,
		Notices:    notices,
	}, nil
}
