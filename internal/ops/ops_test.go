package ops

import (
	"testing"
	"time"

	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/errors"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// newTestDeps returns a ledger in a temp dir plus the embedded taxonomy.
func newTestDeps(t *testing.T) (*ledger.Store, *taxonomy.Taxonomy) {
	t.Helper()
	store, err := ledger.Open(t.TempDir(), "ledger.csv")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	tax, err := taxonomy.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return store, tax
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := entry.ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q) failed: %v", s, err)
	}
	return d
}

func TestResolveDate_Empty(t *testing.T) {
	d, err := resolveDate("")
	if err != nil {
		t.Fatalf("resolveDate failed: %v", err)
	}

	now := time.Now()
	if d.Year() != now.Year() || d.YearDay() != now.YearDay() {
		t.Errorf("resolveDate(\"\") = %v, want today", d)
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Errorf("resolveDate(\"\") = %v, want midnight", d)
	}
}

func TestResolveDate_Invalid(t *testing.T) {
	_, err := resolveDate("24-08-2026")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("resolveDate should return ErrInvalidRequest, got: %v", err)
	}
}

func TestDayView_MergesFoodsKeepsLastScalars(t *testing.T) {
	date := mustDate(t, "2026-08-24")
	entries := []entry.DailyEntry{
		{Date: date, Foods: "tomate", SleepHours: 7, Exercise: "", Mood: 3},
		{Date: mustDate(t, "2026-08-25"), Foods: "lenteja", SleepHours: 8, Mood: 4},
		{Date: date, Foods: "espinaca", SleepHours: 5, Exercise: "30 min", Mood: 2},
	}

	view, ok := dayView(entries, date)
	if !ok {
		t.Fatal("dayView found no entry")
	}
	if view.Foods != "tomate, espinaca" {
		t.Errorf("Foods = %q, want %q", view.Foods, "tomate, espinaca")
	}
	if view.SleepHours != 5 || view.Mood != 2 || view.Exercise != "30 min" {
		t.Errorf("scalars = (%v, %q, %d), want last row's values", view.SleepHours, view.Exercise, view.Mood)
	}
}

func TestDayView_NoEntry(t *testing.T) {
	_, ok := dayView(nil, mustDate(t, "2026-08-24"))
	if ok {
		t.Error("dayView on empty slice should report no entry")
	}
}

func TestNewestFirst_StableWithinDay(t *testing.T) {
	d1 := mustDate(t, "2026-08-24")
	d2 := mustDate(t, "2026-08-25")
	entries := []entry.DailyEntry{
		{Date: d1, Foods: "a"},
		{Date: d1, Foods: "b"},
		{Date: d2, Foods: "c"},
	}

	sorted := newestFirst(entries)
	if sorted[0].Foods != "c" {
		t.Errorf("first = %q, want newest date first", sorted[0].Foods)
	}
	if sorted[1].Foods != "a" || sorted[2].Foods != "b" {
		t.Errorf("same-day order changed: got %q, %q", sorted[1].Foods, sorted[2].Foods)
	}
	if entries[0].Foods != "a" {
		t.Error("newestFirst mutated its input")
	}
}
