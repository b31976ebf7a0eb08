package ops

import (
	"github.com/hpungsan/nutrimind/internal/diversity"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// WeekInput contains parameters for the Week operation.
type WeekInput struct {
	// Reference is an optional YYYY-MM-DD date acting as "now".
	// Defaults to today; mainly useful for tests and retrospection.
	Reference string
}

// WeekOutput contains the result of the Week operation.
type WeekOutput struct {
	Week    WeekSummary `json:"week"`
	Notices []string    `json:"notices,omitempty"`
}

// Week recomputes the weekly diversity state from the full ledger.
// The window is derived from the reference instant on every call; nothing
// is cached across requests.
func Week(store *ledger.Store, tax *taxonomy.Taxonomy, input WeekInput) (*WeekOutput, error) {
	ref, err := resolveDate(input.Reference)
	if err != nil {
		return nil, err
	}

	entries, notices, err := store.ReadAll()
	if err != nil {
		return nil, err
	}

	res := diversity.Aggregate(entries, tax, ref)

	return &WeekOutput{
		Week:    newWeekSummary(res),
		Notices: notices,
	}, nil
}
