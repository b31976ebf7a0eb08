// Package diversity computes the weekly plant-diversity score: the number
// of distinct plant-group foods eaten since the most recent Monday.
package diversity

import (
	"sort"
	"time"

	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// WeeklyGoal is the number of distinct plant foods to reach each week.
// Fixed by design; exposed as a constant so tests and a future config
// layer can reference it.
const WeeklyGoal = 30

// SuggestionPreview is how many missing foods the "try something new"
// prompt shows.
const SuggestionPreview = 5

// Result is the aggregated weekly state.
type Result struct {
	// WeekStart is the Monday 00:00 (local) opening the window.
	WeekStart time.Time `json:"week_start"`

	// Score is the number of distinct plant-vocabulary tokens consumed
	// in the window. Always equal to len(Consumed).
	Score int `json:"score"`

	// Consumed is the sorted set of plant tokens eaten this week.
	Consumed []string `json:"consumed"`

	// Missing is the sorted remainder of the plant vocabulary.
	Missing []string `json:"missing"`
}

// WeekStart returns the most recent Monday at 00:00 local time at or
// before ref. Never cache the result across requests: the boundary moves
// every Monday midnight.
func WeekStart(ref time.Time) time.Time {
	ref = ref.Local()
	// time.Weekday numbers Sunday as 0; shift so Monday opens the week.
	offset := (int(ref.Weekday()) + 6) % 7
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
	return day.AddDate(0, 0, -offset)
}

// Aggregate filters entries to the week window ending at ref, unions their
// normalized food tokens, and intersects with the plant vocabulary.
func Aggregate(entries []entry.DailyEntry, tax *taxonomy.Taxonomy, ref time.Time) Result {
	start := WeekStart(ref)
	refDay := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	consumed := make(map[string]bool)
	for _, e := range entries {
		// Date comparison only: an entry dated Monday is in even if
		// logged before the submission instant.
		if e.Date.Before(start) || e.Date.After(refDay) {
			continue
		}
		for _, token := range e.FoodSet() {
			if tax.IsPlant(token) {
				consumed[token] = true
			}
		}
	}

	consumedList := make([]string, 0, len(consumed))
	for token := range consumed {
		consumedList = append(consumedList, token)
	}
	sort.Strings(consumedList)

	var missing []string
	for _, token := range tax.PlantVocabulary() {
		if !consumed[token] {
			missing = append(missing, token)
		}
	}

	return Result{
		WeekStart: start,
		Score:     len(consumedList),
		Consumed:  consumedList,
		Missing:   missing,
	}
}

// GoalMet reports whether the weekly goal has been reached.
func (r Result) GoalMet() bool {
	return r.Score >= WeeklyGoal
}

// Remaining is how many more distinct plants reach the goal, never negative.
func (r Result) Remaining() int {
	if r.Score >= WeeklyGoal {
		return 0
	}
	return WeeklyGoal - r.Score
}

// Suggestions returns the first SuggestionPreview missing foods.
func (r Result) Suggestions() []string {
	if len(r.Missing) <= SuggestionPreview {
		return r.Missing
	}
	return r.Missing[:SuggestionPreview]
}
