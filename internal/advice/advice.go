// Package advice evaluates threshold rules over a day's entry and the
// weekly diversity state. Every applicable rule fires; none suppresses
// another, so callers always get the full picture.
package advice

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hpungsan/nutrimind/internal/diversity"
	"github.com/hpungsan/nutrimind/internal/entry"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// Severity classifies an advisory message.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Advisory is one message with its severity.
type Advisory struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Sleep and exercise thresholds.
const (
	MinSleepHours      = 6.0
	MaxSleepHours      = 10.0
	MinExerciseMinutes = 30
	MaxExerciseMinutes = 180
)

// digitRun matches the first run of digits in the exercise field.
var digitRun = regexp.MustCompile(`\d+`)

// ParseExerciseMinutes extracts the duration in minutes from a free-text
// exercise description ("45 min caminata" → 45). Returns false when the
// text contains no digits.
func ParseExerciseMinutes(s string) (int, bool) {
	match := digitRun.FindString(s)
	if match == "" {
		return 0, false
	}
	minutes, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return minutes, true
}

// Evaluate runs every rule against today's entry and the weekly result.
// The order is stable: sleep, exercise, essential coverage, weekly goal.
func Evaluate(tax *taxonomy.Taxonomy, today entry.DailyEntry, week diversity.Result) []Advisory {
	var out []Advisory

	out = append(out, sleepAdvisories(today.SleepHours)...)
	out = append(out, exerciseAdvisories(today.Exercise)...)
	out = append(out, coverageAdvisory(tax, today))
	out = append(out, GoalAdvisory(week))

	return out
}

func sleepAdvisories(hours float64) []Advisory {
	var out []Advisory
	if hours < MinSleepHours {
		out = append(out, Advisory{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Dormiste %.1f h: intenta llegar al menos a %.0f horas de sueño.", hours, MinSleepHours),
		})
	}
	if hours > MaxSleepHours {
		out = append(out, Advisory{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Dormiste %.1f h: dormir en exceso también desajusta el descanso.", hours),
		})
	}
	return out
}

func exerciseAdvisories(text string) []Advisory {
	minutes, ok := ParseExerciseMinutes(text)
	if !ok {
		if strings.TrimSpace(text) == "" {
			return []Advisory{{
				Severity: SeverityInfo,
				Message:  "No registraste ejercicio hoy.",
			}}
		}
		return []Advisory{{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("No pude interpretar la duración del ejercicio en %q.", text),
		}}
	}

	var out []Advisory
	if minutes < MinExerciseMinutes {
		out = append(out, Advisory{
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("Solo %d min de ejercicio: intenta llegar a %d.", minutes, MinExerciseMinutes),
		})
	}
	if minutes > MaxExerciseMinutes {
		out = append(out, Advisory{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d min de ejercicio: vigila el sobreentrenamiento.", minutes),
		})
	}
	return out
}

// coverageAdvisory checks the essential categories against today's foods.
// Missing categories collapse into one combined warning.
func coverageAdvisory(tax *taxonomy.Taxonomy, today entry.DailyEntry) Advisory {
	tokens := today.FoodSet()

	var missing []string
	for _, cat := range tax.EssentialCategories() {
		if !tax.CategoryCovered(cat.Name, tokens) {
			missing = append(missing, cat.Name)
		}
	}

	if len(missing) > 0 {
		return Advisory{
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Hoy te faltaron grupos esenciales: %s.", strings.Join(missing, ", ")),
		}
	}
	return Advisory{
		Severity: SeveritySuccess,
		Message:  "Cubriste todos los grupos esenciales hoy.",
	}
}

// GoalAdvisory is the week-level rule alone. Used when a day has no
// submission and the per-entry rules have nothing to evaluate.
func GoalAdvisory(week diversity.Result) Advisory {
	if week.GoalMet() {
		return Advisory{
			Severity: SeveritySuccess,
			Message:  fmt.Sprintf("¡Excelente! Has alcanzado %d plantas distintas esta semana.", week.Score),
		}
	}
	return Advisory{
		Severity: SeverityWarning,
		Message: fmt.Sprintf("Esta semana llevas %d plantas distintas: te faltan %d para llegar a %d.",
			week.Score, week.Remaining(), diversity.WeeklyGoal),
	}
}
