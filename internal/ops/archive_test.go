package ops

import (
	"testing"

	"github.com/hpungsan/nutrimind/internal/archive"
)

func TestArchiveSync_Idempotent(t *testing.T) {
	store, tax := newTestDeps(t)
	db, err := archive.Init(t.TempDir(), "archive.db")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer db.Close()

	seed := []LogInput{
		{Date: "2026-08-24", Foods: "tomate", SleepHours: 8, Mood: 3},
		{Date: "2026-08-25", Foods: "lenteja", SleepHours: 7, Mood: 4},
	}
	for _, in := range seed {
		if _, err := Log(store, tax, in); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	out, err := ArchiveSync(db, store)
	if err != nil {
		t.Fatalf("ArchiveSync failed: %v", err)
	}
	if out.Synced != 2 || out.AlreadyArchived != 0 {
		t.Errorf("first sync = (%d, %d), want (2, 0)", out.Synced, out.AlreadyArchived)
	}

	// Second sync finds everything already there.
	out, err = ArchiveSync(db, store)
	if err != nil {
		t.Fatalf("ArchiveSync failed: %v", err)
	}
	if out.Synced != 0 || out.AlreadyArchived != 2 {
		t.Errorf("second sync = (%d, %d), want (0, 2)", out.Synced, out.AlreadyArchived)
	}
	if out.Total != 2 {
		t.Errorf("Total = %d, want 2", out.Total)
	}
}

func TestArchiveStats_PerWeekNewestFirst(t *testing.T) {
	store, tax := newTestDeps(t)
	db, err := archive.Init(t.TempDir(), "archive.db")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer db.Close()

	// Two weeks: Aug 17-23 and Aug 24-30.
	seed := []LogInput{
		{Date: "2026-08-18", Foods: "tomate, manzana", SleepHours: 8, Mood: 3},
		{Date: "2026-08-20", Foods: "lenteja", SleepHours: 8, Mood: 3},
		{Date: "2026-08-25", Foods: "espinaca", SleepHours: 8, Mood: 3},
	}
	for _, in := range seed {
		if _, err := Log(store, tax, in); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}
	if _, err := ArchiveSync(db, store); err != nil {
		t.Fatalf("ArchiveSync failed: %v", err)
	}

	out, err := ArchiveStats(db, tax, ArchiveStatsInput{})
	if err != nil {
		t.Fatalf("ArchiveStats failed: %v", err)
	}

	if len(out.Weeks) != 2 {
		t.Fatalf("Weeks = %d, want 2", len(out.Weeks))
	}
	if out.Weeks[0].WeekStart != "2026-08-24" {
		t.Errorf("first week = %s, want newest (2026-08-24)", out.Weeks[0].WeekStart)
	}
	if out.Weeks[0].Score != 1 {
		t.Errorf("newest week score = %d, want 1", out.Weeks[0].Score)
	}
	if out.Weeks[1].WeekStart != "2026-08-17" {
		t.Errorf("second week = %s, want 2026-08-17", out.Weeks[1].WeekStart)
	}
	if out.Weeks[1].Score != 3 {
		t.Errorf("older week score = %d, want 3", out.Weeks[1].Score)
	}
	if out.Total != 3 {
		t.Errorf("Total = %d, want 3", out.Total)
	}
}

func TestArchiveStats_LimitsWeeks(t *testing.T) {
	store, tax := newTestDeps(t)
	db, err := archive.Init(t.TempDir(), "archive.db")
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer db.Close()

	seed := []LogInput{
		{Date: "2026-08-04", Foods: "tomate", SleepHours: 8, Mood: 3},
		{Date: "2026-08-11", Foods: "manzana", SleepHours: 8, Mood: 3},
		{Date: "2026-08-18", Foods: "lenteja", SleepHours: 8, Mood: 3},
	}
	for _, in := range seed {
		if _, err := Log(store, tax, in); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}
	if _, err := ArchiveSync(db, store); err != nil {
		t.Fatalf("ArchiveSync failed: %v", err)
	}

	out, err := ArchiveStats(db, tax, ArchiveStatsInput{Limit: 2})
	if err != nil {
		t.Fatalf("ArchiveStats failed: %v", err)
	}
	if len(out.Weeks) != 2 {
		t.Errorf("Weeks = %d, want 2 (limited)", len(out.Weeks))
	}
}
