package ops

import (
	"strings"
	"testing"

	"github.com/hpungsan/nutrimind/internal/advice"
)

func TestAdvise_NoEntry(t *testing.T) {
	store, tax := newTestDeps(t)

	out, err := Advise(store, tax, AdviseInput{Date: "2026-08-26"})
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}

	if out.HasEntry {
		t.Error("HasEntry = true, want false")
	}
	if len(out.Advisories) != 1 {
		t.Fatalf("Advisories = %d, want 1 (goal only)", len(out.Advisories))
	}
	if out.Advisories[0].Severity != advice.SeverityWarning {
		t.Errorf("Severity = %q, want warning", out.Advisories[0].Severity)
	}
	found := false
	for _, n := range out.Notices {
		if strings.Contains(n, "2026-08-26") {
			found = true
		}
	}
	if !found {
		t.Errorf("Notices = %v, want a no-entry notice for the date", out.Notices)
	}
}

func TestAdvise_ShortSleepWarns(t *testing.T) {
	store, tax := newTestDeps(t)

	if _, err := Log(store, tax, LogInput{Date: "2026-08-26", Foods: "tomate", SleepHours: 5, Mood: 3}); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	out, err := Advise(store, tax, AdviseInput{Date: "2026-08-26"})
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}
	if !out.HasEntry {
		t.Fatal("HasEntry = false, want true")
	}

	warned := false
	for _, a := range out.Advisories {
		if a.Severity == advice.SeverityWarning && strings.Contains(a.Message, "Dormiste") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("Advisories = %v, want a short-sleep warning", out.Advisories)
	}
}

func TestAdvise_MergedDayCoverage(t *testing.T) {
	store, tax := newTestDeps(t)

	// Essentials spread over two submissions of the same day.
	seed := []LogInput{
		{Date: "2026-08-26", Foods: "tomate, manzana", SleepHours: 8, Mood: 3},
		{Date: "2026-08-26", Foods: "kéfir, cebolla", SleepHours: 8, Exercise: "45 min", Mood: 4},
	}
	for _, in := range seed {
		if _, err := Log(store, tax, in); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	out, err := Advise(store, tax, AdviseInput{Date: "2026-08-26"})
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}

	covered := false
	for _, a := range out.Advisories {
		if a.Severity == advice.SeveritySuccess && strings.Contains(a.Message, "esenciales") {
			covered = true
		}
	}
	if !covered {
		t.Errorf("Advisories = %v, want essential-coverage success across merged rows", out.Advisories)
	}
}
