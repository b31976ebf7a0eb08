package ops

import (
	"database/sql"
	"sort"

	"github.com/hpungsan/nutrimind/internal/archive"
	"github.com/hpungsan/nutrimind/internal/diversity"
	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/errors"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// ArchiveSyncOutput contains the result of the ArchiveSync operation.
type ArchiveSyncOutput struct {
	Synced          int      `json:"synced"`
	AlreadyArchived int      `json:"already_archived"`
	Total           int      `json:"total"`
	Notices         []string `json:"notices,omitempty"`
}

// ArchiveSync copies every ledger entry into the archive database. The
// archive's natural-key unique index makes this idempotent; rows already
// present count as AlreadyArchived.
func ArchiveSync(db *sql.DB, store *ledger.Store) (*ArchiveSyncOutput, error) {
	entries, notices, err := store.ReadAll()
	if err != nil {
		return nil, err
	}

	synced := 0
	already := 0
	for _, e := range entries {
		inserted, err := archive.Insert(db, e)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		if inserted {
			synced++
		} else {
			already++
		}
	}

	total, err := archive.Count(db)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ArchiveSyncOutput{
		Synced:          synced,
		AlreadyArchived: already,
		Total:           total,
		Notices:         notices,
	}, nil
}

// ArchiveWeek is one week's diversity score computed from archived entries.
type ArchiveWeek struct {
	WeekStart string `json:"week_start"`
	Score     int    `json:"score"`
	Goal      int    `json:"goal"`
	GoalMet   bool   `json:"goal_met"`
	Entries   int    `json:"entries"`
}

// ArchiveStatsInput contains parameters for the ArchiveStats operation.
type ArchiveStatsInput struct {
	Limit int // max weeks to return, default: 12
}

// ArchiveStatsOutput contains the result of the ArchiveStats operation.
type ArchiveStatsOutput struct {
	Weeks []ArchiveWeek `json:"weeks"`
	Total int           `json:"total_entries"`
}

// DefaultStatsWeeks is how many weeks ArchiveStats returns by default.
const DefaultStatsWeeks = 12

// ArchiveStats computes per-week diversity scores over the whole archive,
// newest week first.
func ArchiveStats(db *sql.DB, tax *taxonomy.Taxonomy, input ArchiveStatsInput) (*ArchiveStatsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultStatsWeeks
	}

	entries, err := archive.AllEntries(db)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	// Bucket entries by their week start.
	buckets := make(map[string][]entry.DailyEntry)
	for _, e := range entries {
		key := diversity.WeekStart(e.Date).Format(entry.DateLayout)
		buckets[key] = append(buckets[key], e)
	}

	starts := make([]string, 0, len(buckets))
	for key := range buckets {
		starts = append(starts, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(starts)))
	if len(starts) > limit {
		starts = starts[:limit]
	}

	weeks := make([]ArchiveWeek, 0, len(starts))
	for _, key := range starts {
		bucket := buckets[key]
		// Aggregate against the bucket's newest date so the whole week falls
		// inside the window. AllEntries returns rows in date order.
		res := diversity.Aggregate(bucket, tax, bucket[len(bucket)-1].Date)
		weeks = append(weeks, ArchiveWeek{
			WeekStart: key,
			Score:     res.Score,
			Goal:      diversity.WeeklyGoal,
			GoalMet:   res.GoalMet(),
			Entries:   len(bucket),
		})
	}

	return &ArchiveStatsOutput{
		Weeks: weeks,
		Total: len(entries),
	}, nil
}
