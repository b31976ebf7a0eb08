package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Descriptions are what MCP clients show to the model, so
// they spell out defaults and formats explicitly.

var logToolDef = mcp.NewTool("habit_log",
	mcp.WithDescription("Log one day's habits: foods eaten (comma-separated), sleep hours, exercise and mood. Returns the updated weekly plant-diversity state plus advisories."),
	mcp.WithString("date",
		mcp.Description("Date in YYYY-MM-DD format. Defaults to today."),
	),
	mcp.WithString("foods",
		mcp.Description("Comma-separated foods, e.g. 'tomate, espinaca, lenteja'. May be empty."),
	),
	mcp.WithNumber("sleep_hours",
		mcp.Required(),
		mcp.Description("Hours slept, 0-24. Fractions allowed."),
	),
	mcp.WithString("exercise",
		mcp.Description("Free-text exercise description, e.g. '45 min caminata'."),
	),
	mcp.WithNumber("mood",
		mcp.Required(),
		mcp.Description("Mood rating, integer 1-5."),
	),
)

var weekToolDef = mcp.NewTool("habit_week",
	mcp.WithDescription("Weekly plant-diversity summary: distinct plant foods since Monday, goal progress, consumed and missing lists, suggestions."),
	mcp.WithString("reference",
		mcp.Description("Reference date in YYYY-MM-DD format acting as 'now'. Defaults to today."),
	),
)

var adviseToolDef = mcp.NewTool("habit_advise",
	mcp.WithDescription("Re-evaluate advisories (sleep, exercise, essential food groups, weekly goal) for a date without logging anything."),
	mcp.WithString("date",
		mcp.Description("Date in YYYY-MM-DD format. Defaults to today."),
	),
)

var historyToolDef = mcp.NewTool("habit_history",
	mcp.WithDescription("List logged entries newest first with pagination."),
	mcp.WithNumber("limit",
		mcp.Description("Max entries to return (default 20, max 100)."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Entries to skip (default 0)."),
	),
)

var exportToolDef = mcp.NewTool("habit_export",
	mcp.WithDescription("Export the ledger to a JSONL file. Path must be in ~/.nutrimind/exports or a configured allowed path."),
	mcp.WithString("path",
		mcp.Description("Destination file with .jsonl extension. Defaults to ~/.nutrimind/exports/nutrimind-<timestamp>.jsonl."),
	),
	mcp.WithString("since",
		mcp.Description("Only export entries on or after this YYYY-MM-DD date."),
	),
)

var taxonomyToolDef = mcp.NewTool("habit_taxonomy",
	mcp.WithDescription("Browse the food taxonomy: categories with their foods, or the full plant vocabulary."),
	mcp.WithString("category",
		mcp.Description("Category name to show, e.g. 'verduras'. Omit for all categories."),
	),
)
