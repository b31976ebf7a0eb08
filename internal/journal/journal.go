// Package journal parses markdown food journals for bulk import. A journal
// is a sequence of date headers, each followed by bullet-listed foods and
// optional sueño/ejercicio/ánimo lines:
//
//	## 2026-08-24
//	- tomate
//	- espinaca
//	sueño: 7.5
//	ejercicio: 45 min caminata
//	ánimo: 4
package journal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hpungsan/nutrimind/internal/entry"
)

// ParsedEntry is one journal block converted to a ledger entry.
type ParsedEntry struct {
	Entry entry.DailyEntry
	Line  int // line number of the date header
}

// ParseError describes a block or line that could not be used.
type ParseError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// dateHeaderPattern matches a markdown header whose text is a calendar date.
var dateHeaderPattern = regexp.MustCompile(`^(#{1,6})\s+(\d{4}-\d{2}-\d{2})[ \t]*$`)

// bulletPattern matches a food bullet.
var bulletPattern = regexp.MustCompile(`^[-*]\s+(.+)$`)

// fieldPattern matches sueño/ejercicio/ánimo lines, accent-optional.
var fieldPattern = regexp.MustCompile(`(?i)^(sueño|sueno|sleep|ejercicio|exercise|ánimo|animo|mood)\s*:\s*(.*)$`)

// Parse scans a journal and returns the entries in document order plus any
// per-block problems. Blocks without a single valid food are reported, not
// silently dropped. Defaults per block: sleep 8, mood 3, exercise empty.
func Parse(text string) ([]ParsedEntry, []ParseError) {
	lines := strings.Split(text, "\n")

	var entries []ParsedEntry
	var errs []ParseError

	var current *ParsedEntry
	var foods []string

	flush := func() {
		if current == nil {
			return
		}
		if len(foods) == 0 {
			errs = append(errs, ParseError{
				Line:    current.Line,
				Message: fmt.Sprintf("block %s has no foods", current.Entry.Date.Format(entry.DateLayout)),
			})
		} else {
			current.Entry.Foods = strings.Join(foods, ", ")
			entries = append(entries, *current)
		}
		current = nil
		foods = nil
	}

	for i, raw := range lines {
		line := strings.TrimRight(raw, " \t\r")
		lineNo := i + 1

		if m := dateHeaderPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			date, err := entry.ParseDate(m[2])
			if err != nil {
				errs = append(errs, ParseError{Line: lineNo, Message: fmt.Sprintf("unparseable date %q", m[2])})
				continue
			}
			current = &ParsedEntry{
				Line: lineNo,
				Entry: entry.DailyEntry{
					Date:       date,
					SleepHours: 8,
					Mood:       3,
				},
			}
			continue
		}

		if current == nil {
			continue // preamble before the first date header
		}

		trimmed := strings.TrimSpace(line)
		if m := bulletPattern.FindStringSubmatch(trimmed); m != nil {
			food := entry.NormalizeToken(m[1])
			if food != "" {
				foods = append(foods, food)
			}
			continue
		}

		if m := fieldPattern.FindStringSubmatch(trimmed); m != nil {
			if err := applyField(&current.Entry, m[1], m[2]); err != nil {
				errs = append(errs, ParseError{Line: lineNo, Message: err.Error()})
			}
			continue
		}
	}
	flush()

	return entries, errs
}

func applyField(e *entry.DailyEntry, key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "sueño", "sueno", "sleep":
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("unparseable sleep value %q", value)
		}
		e.SleepHours = hours
	case "ejercicio", "exercise":
		e.Exercise = value
	case "ánimo", "animo", "mood":
		mood, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("unparseable mood value %q", value)
		}
		e.Mood = mood
	}
	return nil
}
