// Package report renders aggregated state for the CLI and the web
// dashboard. Output here is presentation only; all numbers come from the
// diversity and advice packages.
package report

import (
	"fmt"
	"strings"

	"github.com/hpungsan/nutrimind/internal/advice"
	"github.com/hpungsan/nutrimind/internal/diversity"
	"github.com/hpungsan/nutrimind/internal/entry"
)

// ProgressBar renders a fixed-width bar of filled and empty blocks,
// capped at goal width: "██████░░░░" for 6/10.
func ProgressBar(score, goal int) string {
	if goal <= 0 {
		return ""
	}
	filled := min(score, goal)
	return strings.Repeat("█", filled) + strings.Repeat("░", goal-filled)
}

// WeeklyMarkdown builds the weekly report shown by `nutrimind week` and
// rendered to HTML on the dashboard.
func WeeklyMarkdown(res diversity.Result, advisories []advice.Advisory, notices []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Diversidad vegetal — semana del %s\n\n", res.WeekStart.Format(entry.DateLayout))
	fmt.Fprintf(&b, "**%d/%d** plantas distintas\n\n", res.Score, diversity.WeeklyGoal)
	fmt.Fprintf(&b, "```\n%s\n```\n\n", ProgressBar(res.Score, diversity.WeeklyGoal))

	if len(res.Consumed) > 0 {
		b.WriteString("## Consumidas\n\n")
		fmt.Fprintf(&b, "%s\n\n", strings.Join(res.Consumed, ", "))
	}

	if suggestions := res.Suggestions(); len(suggestions) > 0 && !res.GoalMet() {
		b.WriteString("## Prueba algo nuevo\n\n")
		for _, s := range suggestions {
			fmt.Fprintf(&b, "- %s\n", s)
		}
		b.WriteString("\n")
	}

	if len(advisories) > 0 {
		b.WriteString("## Avisos\n\n")
		for _, a := range advisories {
			fmt.Fprintf(&b, "- **%s**: %s\n", a.Severity, a.Message)
		}
		b.WriteString("\n")
	}

	for _, n := range notices {
		fmt.Fprintf(&b, "> ⚠ %s\n", n)
	}
	if len(notices) > 0 {
		b.WriteString(">\n> La diversidad podría no estar completa.\n")
	}

	return b.String()
}

// HistoryTable renders entries as a fixed-width text table, newest first.
func HistoryTable(entries []entry.DailyEntry) string {
	if len(entries) == 0 {
		return "Sin registros todavía.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-7s %-6s %-24s %s\n", "FECHA", "SUEÑO", "ÁNIMO", "EJERCICIO", "ALIMENTOS")
	for _, e := range entries {
		fmt.Fprintf(&b, "%-12s %-7s %-6d %-24s %s\n",
			e.Date.Format(entry.DateLayout),
			fmt.Sprintf("%.1fh", e.SleepHours),
			e.Mood,
			truncate(e.Exercise, 24),
			e.Foods,
		)
	}
	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
