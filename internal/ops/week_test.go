package ops

import (
	"testing"
)

func TestWeek_WindowExcludesPreviousWeek(t *testing.T) {
	store, tax := newTestDeps(t)

	// Sunday of the previous week, then Monday and Wednesday of this one.
	seed := []LogInput{
		{Date: "2026-08-23", Foods: "manzana", SleepHours: 8, Mood: 3},
		{Date: "2026-08-24", Foods: "tomate", SleepHours: 8, Mood: 3},
		{Date: "2026-08-26", Foods: "lenteja", SleepHours: 8, Mood: 3},
	}
	for _, in := range seed {
		if _, err := Log(store, tax, in); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	out, err := Week(store, tax, WeekInput{Reference: "2026-08-26"})
	if err != nil {
		t.Fatalf("Week failed: %v", err)
	}

	if out.Week.Score != 2 {
		t.Errorf("Score = %d, want 2 (Sunday entry outside window)", out.Week.Score)
	}
	if out.Week.WeekStart != "2026-08-24" {
		t.Errorf("WeekStart = %q, want 2026-08-24", out.Week.WeekStart)
	}
	if out.Week.Remaining != 28 {
		t.Errorf("Remaining = %d, want 28", out.Week.Remaining)
	}
	if out.Week.GoalMet {
		t.Error("GoalMet = true, want false")
	}
}

func TestWeek_EmptyLedger(t *testing.T) {
	store, tax := newTestDeps(t)

	out, err := Week(store, tax, WeekInput{Reference: "2026-08-26"})
	if err != nil {
		t.Fatalf("Week failed: %v", err)
	}

	if out.Week.Score != 0 {
		t.Errorf("Score = %d, want 0", out.Week.Score)
	}
	if out.Week.Consumed == nil || out.Week.Missing == nil || out.Week.Suggestions == nil {
		t.Error("summary slices must be non-nil for JSON output")
	}
	if len(out.Week.Suggestions) != 5 {
		t.Errorf("Suggestions = %d items, want preview of 5", len(out.Week.Suggestions))
	}
}

func TestWeek_NonPlantTokensDoNotScore(t *testing.T) {
	store, tax := newTestDeps(t)

	// Kefir is in the taxonomy (probióticos) but not a plant category member.
	if _, err := Log(store, tax, LogInput{Date: "2026-08-25", Foods: "kéfir, tomate", SleepHours: 8, Mood: 3}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	out, err := Week(store, tax, WeekInput{Reference: "2026-08-26"})
	if err != nil {
		t.Fatalf("Week failed: %v", err)
	}
	if out.Week.Score != 1 {
		t.Errorf("Score = %d, want 1 (only plant foods count)", out.Week.Score)
	}
}
