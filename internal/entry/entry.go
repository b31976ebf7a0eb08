package entry

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used everywhere: ledger rows,
// CLI flags, journal headers.
const DateLayout = "2006-01-02"

// DailyEntry is one row of the habit ledger. Entries are immutable once
// appended; there is no edit or delete operation.
type DailyEntry struct {
	// Date is the calendar date of the entry (midnight, local time).
	Date time.Time `json:"date"`

	// Foods is the raw comma-separated food list as entered by the user.
	// Normalization happens on read, never on write, so the ledger keeps
	// what the user actually typed.
	Foods string `json:"foods"`

	// SleepHours is hours slept, 0-24.
	SleepHours float64 `json:"sleep_hours"`

	// Exercise is a free-text description, e.g. "45 min caminata".
	Exercise string `json:"exercise"`

	// Mood is a 1-5 self-assessment.
	Mood int `json:"mood"`
}

// FoodSet returns the entry's normalized food tokens.
func (e DailyEntry) FoodSet() []string {
	return NormalizeFoods(e.Foods)
}

// ParseDate parses a calendar date and truncates it to midnight local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// NormalizeToken lowercases and trims a single food token.
func NormalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeFoods splits a comma-separated food list into a sorted set of
// normalized tokens. Empty tokens are discarded; an empty or missing input
// yields an empty set. Normalizing an already-normalized list is a no-op.
func NormalizeFoods(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	seen := make(map[string]bool)
	tokens := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		token := NormalizeToken(part)
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		tokens = append(tokens, token)
	}

	sort.Strings(tokens)
	return tokens
}
