package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/hpungsan/nutrimind/internal/config"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/ops"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// setupEnv creates a temporary environment for CLI testing.
func setupEnv(t *testing.T) *appEnv {
	t.Helper()

	baseDir := t.TempDir()
	cfg := config.DefaultConfig()

	store, err := ledger.Open(baseDir, cfg.LedgerFilename)
	if err != nil {
		t.Fatalf("failed to open ledger: %v", err)
	}
	tax, err := taxonomy.Load()
	if err != nil {
		t.Fatalf("failed to load taxonomy: %v", err)
	}

	return &appEnv{store: store, tax: tax, cfg: cfg, baseDir: baseDir}
}

// runApp runs the CLI with the given args and captures stdout.
func runApp(t *testing.T, env *appEnv, args ...string) (string, error) {
	t.Helper()

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := newCLIApp(env).Run(append([]string{"nutrimind"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	return buf.String(), err
}

func TestCLILog(t *testing.T) {
	env := setupEnv(t)

	out, err := runApp(t, env, "log",
		"--date=2026-08-26", "--foods=tomate, espinaca", "--sleep=7.5", "--mood=4")
	if err != nil {
		t.Fatalf("log command failed: %v", err)
	}

	var output ops.LogOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Week.Score != 2 {
		t.Errorf("score = %d, want 2", output.Week.Score)
	}
	if output.Week.Goal != 30 {
		t.Errorf("goal = %d, want 30", output.Week.Goal)
	}
}

func TestCLIWeek_Markdown(t *testing.T) {
	env := setupEnv(t)

	if _, err := runApp(t, env, "log", "--date=2026-08-26", "--foods=tomate", "--sleep=8", "--mood=3"); err != nil {
		t.Fatalf("seed log failed: %v", err)
	}

	out, err := runApp(t, env, "week", "--date=2026-08-26")
	if err != nil {
		t.Fatalf("week command failed: %v", err)
	}
	if !strings.Contains(out, "Diversidad vegetal") {
		t.Errorf("markdown report missing header:\n%s", out)
	}
	if !strings.Contains(out, "1/30") {
		t.Errorf("markdown report missing score:\n%s", out)
	}
}

func TestCLIWeek_JSON(t *testing.T) {
	env := setupEnv(t)

	out, err := runApp(t, env, "week", "--date=2026-08-26", "--json")
	if err != nil {
		t.Fatalf("week command failed: %v", err)
	}

	var output ops.WeekOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.Week.WeekStart != "2026-08-24" {
		t.Errorf("week_start = %q, want 2026-08-24", output.Week.WeekStart)
	}
}

func TestCLIAdvise(t *testing.T) {
	env := setupEnv(t)

	out, err := runApp(t, env, "advise", "--date=2026-08-26")
	if err != nil {
		t.Fatalf("advise command failed: %v", err)
	}

	var output ops.AdviseOutput
	if err := json.Unmarshal([]byte(out), &output); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if output.HasEntry {
		t.Error("has_entry = true, want false")
	}
	if len(output.Advisories) != 1 {
		t.Errorf("advisories = %d, want 1", len(output.Advisories))
	}
}

func TestCLIHistory_Table(t *testing.T) {
	env := setupEnv(t)

	if _, err := runApp(t, env, "log", "--date=2026-08-25", "--foods=lenteja", "--sleep=8", "--mood=3"); err != nil {
		t.Fatalf("seed log failed: %v", err)
	}

	out, err := runApp(t, env, "history")
	if err != nil {
		t.Fatalf("history command failed: %v", err)
	}
	if !strings.Contains(out, "2026-08-25") || !strings.Contains(out, "lenteja") {
		t.Errorf("table missing entry:\n%s", out)
	}
}

func TestCLITaxonomy_SingleCategory(t *testing.T) {
	env := setupEnv(t)

	out, err := runApp(t, env, "taxonomy", "--category=legumbres")
	if err != nil {
		t.Fatalf("taxonomy command failed: %v", err)
	}

	var cat taxonomy.Category
	if err := json.Unmarshal([]byte(out), &cat); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	if cat.Name != "legumbres" || !cat.Plant {
		t.Errorf("category = %+v, want legumbres (plant)", cat)
	}
}

func TestCLIErrorHandling(t *testing.T) {
	env := setupEnv(t)

	_, err := runApp(t, env, "log", "--sleep=30", "--mood=3")
	if err == nil {
		t.Fatal("expected error for out-of-range sleep")
	}
	if !strings.Contains(err.Error(), "INVALID_REQUEST") {
		t.Errorf("error = %v, want INVALID_REQUEST code", err)
	}
}

func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "no args", args: []string{"nutrimind"}, expected: false},
		{name: "log command", args: []string{"nutrimind", "log"}, expected: true},
		{name: "week command", args: []string{"nutrimind", "week"}, expected: true},
		{name: "archive command", args: []string{"nutrimind", "archive"}, expected: true},
		{name: "help flag", args: []string{"nutrimind", "--help"}, expected: true},
		{name: "version flag", args: []string{"nutrimind", "--version"}, expected: true},
		{name: "unknown arg defaults to MCP", args: []string{"nutrimind", "--unknown"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if got := isCLIMode(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestIsHelpOrVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected bool
	}{
		{name: "no args", args: []string{"nutrimind"}, expected: false},
		{name: "help word", args: []string{"nutrimind", "help"}, expected: true},
		{name: "help flag", args: []string{"nutrimind", "-h"}, expected: true},
		{name: "version flag", args: []string{"nutrimind", "-v"}, expected: true},
		{name: "log command", args: []string{"nutrimind", "log"}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if got := isHelpOrVersion(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
