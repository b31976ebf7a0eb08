package ops

import (
	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/ledger"
)

// HistoryInput contains parameters for the History operation.
type HistoryInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// HistoryOutput contains the result of the History operation.
type HistoryOutput struct {
	Items      []entry.DailyEntry `json:"items"`
	Pagination Pagination         `json:"pagination"`
	Sort       string             `json:"sort"`
	Notices    []string           `json:"notices,omitempty"`
}

// History lists ledger entries newest first with pagination.
func History(store *ledger.Store, input HistoryInput) (*HistoryOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	offset := max(input.Offset, 0)

	entries, notices, err := store.ReadAll()
	if err != nil {
		return nil, err
	}

	sorted := newestFirst(entries)
	total := len(sorted)

	end := min(offset+limit, total)
	items := []entry.DailyEntry{}
	if offset < total {
		items = sorted[offset:end]
	}

	return &HistoryOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(items) < total,
			Total:   total,
		},
		Sort:    "date_desc",
		Notices: notices,
	}, nil
}
