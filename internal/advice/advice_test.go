package advice

import (
	"strings"
	"testing"

	"github.com/hpungsan/nutrimind/internal/diversity"
	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

func mustTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.Load()
	if err != nil {
		t.Fatalf("taxonomy.Load failed: %v", err)
	}
	return tax
}

func TestParseExerciseMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantOK  bool
	}{
		{"45 min caminata", 45, true},
		{"caminata de 90 minutos", 90, true},
		{"caminata larga", 0, false},
		{"", 0, false},
		{"2x30 series", 2, true}, // first digit run wins
	}
	for _, tt := range tests {
		got, ok := ParseExerciseMinutes(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseExerciseMinutes(%q) = (%d, %v), want (%d, %v)",
				tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func findSeverity(advisories []Advisory, substr string) (Severity, bool) {
	for _, a := range advisories {
		if strings.Contains(a.Message, substr) {
			return a.Severity, true
		}
	}
	return "", false
}

func TestSleepThresholds(t *testing.T) {
	tax := mustTaxonomy(t)
	week := diversity.Result{}

	tests := []struct {
		hours    float64
		wantWarn bool
	}{
		{5.5, true},
		{11, true},
		{8, false},
		{6, false},
		{10, false},
	}
	for _, tt := range tests {
		today := entry.DailyEntry{SleepHours: tt.hours, Exercise: "45 min caminata"}
		advisories := Evaluate(tax, today, week)
		_, found := findSeverity(advisories, "Dormiste")
		if found != tt.wantWarn {
			t.Errorf("sleep %.1f: warning fired = %v, want %v", tt.hours, found, tt.wantWarn)
		}
	}
}

func TestExerciseRules(t *testing.T) {
	tax := mustTaxonomy(t)
	week := diversity.Result{}

	// 45 min: inside [30, 180], no duration advisory
	advisories := Evaluate(tax, entry.DailyEntry{SleepHours: 8, Exercise: "45 min caminata"}, week)
	if _, found := findSeverity(advisories, "min de ejercicio"); found {
		t.Error("45 min should not trigger a duration advisory")
	}

	// No digits: unparseable info, no threshold advisory
	advisories = Evaluate(tax, entry.DailyEntry{SleepHours: 8, Exercise: "caminata larga"}, week)
	sev, found := findSeverity(advisories, "interpretar")
	if !found || sev != SeverityInfo {
		t.Errorf("unparseable exercise should emit info, got found=%v sev=%v", found, sev)
	}

	// Short session
	advisories = Evaluate(tax, entry.DailyEntry{SleepHours: 8, Exercise: "15 min estiramientos"}, week)
	sev, found = findSeverity(advisories, "Solo 15 min")
	if !found || sev != SeverityInfo {
		t.Errorf("short exercise should emit info, got found=%v sev=%v", found, sev)
	}

	// Overtraining
	advisories = Evaluate(tax, entry.DailyEntry{SleepHours: 8, Exercise: "200 min bici"}, week)
	sev, found = findSeverity(advisories, "sobreentrenamiento")
	if !found || sev != SeverityWarning {
		t.Errorf("long exercise should warn, got found=%v sev=%v", found, sev)
	}
}

func TestEssentialCoverage(t *testing.T) {
	tax := mustTaxonomy(t)
	week := diversity.Result{}

	// All four essential groups covered
	today := entry.DailyEntry{
		SleepHours: 8,
		Exercise:   "45 min caminata",
		Foods:      "tomate, manzana, kéfir, ajo",
	}
	advisories := Evaluate(tax, today, week)
	sev, found := findSeverity(advisories, "grupos esenciales")
	if !found {
		t.Fatal("coverage advisory missing")
	}
	if sev != SeveritySuccess {
		t.Errorf("full coverage should be success, got %v", sev)
	}

	// Missing probiotics and prebiotics
	today.Foods = "tomate, manzana"
	advisories = Evaluate(tax, today, week)
	var combined *Advisory
	for i, a := range advisories {
		if strings.Contains(a.Message, "faltaron") {
			combined = &advisories[i]
		}
	}
	if combined == nil {
		t.Fatal("missing-groups warning not emitted")
	}
	if combined.Severity != SeverityWarning {
		t.Errorf("severity = %v, want warning", combined.Severity)
	}
	if !strings.Contains(combined.Message, "probióticos") || !strings.Contains(combined.Message, "prebióticos") {
		t.Errorf("combined warning should list both missing groups: %q", combined.Message)
	}
	if strings.Contains(combined.Message, "verduras") {
		t.Errorf("covered group listed as missing: %q", combined.Message)
	}
}

func TestGoalAdvisory(t *testing.T) {
	tax := mustTaxonomy(t)
	today := entry.DailyEntry{SleepHours: 8, Exercise: "45 min caminata"}

	advisories := Evaluate(tax, today, diversity.Result{Score: 31})
	sev, found := findSeverity(advisories, "Excelente")
	if !found || sev != SeveritySuccess {
		t.Errorf("goal met should emit success, found=%v sev=%v", found, sev)
	}

	advisories = Evaluate(tax, today, diversity.Result{Score: 18})
	sev, found = findSeverity(advisories, "te faltan 12")
	if !found || sev != SeverityWarning {
		t.Errorf("goal unmet should warn with remaining count, found=%v sev=%v", found, sev)
	}
}

func TestAllRulesFireIndependently(t *testing.T) {
	tax := mustTaxonomy(t)
	// Bad sleep AND unparseable exercise AND nothing eaten AND goal unmet:
	// every rule should produce its own message.
	today := entry.DailyEntry{SleepHours: 4, Exercise: "caminata"}
	advisories := Evaluate(tax, today, diversity.Result{Score: 0})
	if len(advisories) != 4 {
		t.Errorf("expected 4 advisories, got %d: %+v", len(advisories), advisories)
	}
}
