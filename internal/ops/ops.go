// Package ops implements NutriMind's operations. Each operation takes an
// Input struct and returns an Output struct so the CLI, MCP server and web
// dashboard all share one code path. The weekly aggregation in particular
// runs exactly once per request, never per display section.
package ops

import (
	"sort"
	"strings"
	"time"

	"github.com/hpungsan/nutrimind/internal/advice"
	"github.com/hpungsan/nutrimind/internal/diversity"
	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/errors"
	"github.com/hpungsan/nutrimind/internal/report"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// Pagination limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// WeekSummary is the weekly diversity state shared by several outputs.
type WeekSummary struct {
	WeekStart   string   `json:"week_start"`
	Score       int      `json:"score"`
	Goal        int      `json:"goal"`
	Remaining   int      `json:"remaining"`
	GoalMet     bool     `json:"goal_met"`
	ProgressBar string   `json:"progress_bar"`
	Consumed    []string `json:"consumed"`
	Missing     []string `json:"missing"`
	Suggestions []string `json:"suggestions"`
}

// newWeekSummary converts an aggregation result into the wire shape.
func newWeekSummary(res diversity.Result) WeekSummary {
	consumed := res.Consumed
	if consumed == nil {
		consumed = []string{}
	}
	missing := res.Missing
	if missing == nil {
		missing = []string{}
	}
	suggestions := res.Suggestions()
	if suggestions == nil {
		suggestions = []string{}
	}
	return WeekSummary{
		WeekStart:   res.WeekStart.Format(entry.DateLayout),
		Score:       res.Score,
		Goal:        diversity.WeeklyGoal,
		Remaining:   res.Remaining(),
		GoalMet:     res.GoalMet(),
		ProgressBar: report.ProgressBar(res.Score, diversity.WeeklyGoal),
		Consumed:    consumed,
		Missing:     missing,
		Suggestions: suggestions,
	}
}

// resolveDate parses an optional YYYY-MM-DD string, defaulting to today.
func resolveDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	d, err := entry.ParseDate(s)
	if err != nil {
		return time.Time{}, errors.NewInvalidRequest("date must be YYYY-MM-DD")
	}
	return d, nil
}

// dayView merges every entry of one calendar date into a single view:
// foods union across rows, scalar fields from the most recent row. This is
// what the advisory engine evaluates when a day has several submissions.
func dayView(entries []entry.DailyEntry, date time.Time) (entry.DailyEntry, bool) {
	var foods []string
	var last entry.DailyEntry
	found := false
	for _, e := range entries {
		if !sameDay(e.Date, date) {
			continue
		}
		if e.Foods != "" {
			foods = append(foods, e.Foods)
		}
		last = e
		found = true
	}
	if !found {
		return entry.DailyEntry{}, false
	}
	last.Foods = strings.Join(foods, ", ")
	return last, true
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// newestFirst returns entries sorted by date descending; rows sharing a
// date keep their ledger order relative to each other.
func newestFirst(entries []entry.DailyEntry) []entry.DailyEntry {
	out := make([]entry.DailyEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// adviseFor evaluates the advisory rules for one date against the week
// ending at that date. The caller supplies the aggregated week so it is
// computed once per request.
func adviseFor(tax *taxonomy.Taxonomy, entries []entry.DailyEntry, date time.Time, week diversity.Result) ([]advice.Advisory, bool) {
	today, ok := dayView(entries, date)
	if !ok {
		// No submission that day: only the week-level rule applies.
		return []advice.Advisory{advice.GoalAdvisory(week)}, false
	}
	return advice.Evaluate(tax, today, week), true
}
