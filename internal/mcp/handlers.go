package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/nutrimind/internal/config"
	"github.com/hpungsan/nutrimind/internal/errors"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/ops"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store *ledger.Store
	tax   *taxonomy.Taxonomy
	cfg   *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store *ledger.Store, tax *taxonomy.Taxonomy, cfg *config.Config) *Handlers {
	return &Handlers{store: store, tax: tax, cfg: cfg}
}

// Request types for each tool

// LogRequest represents the arguments for habit_log.
type LogRequest struct {
	Date       string  `json:"date,omitempty"`
	Foods      string  `json:"foods,omitempty"`
	SleepHours float64 `json:"sleep_hours"`
	Exercise   string  `json:"exercise,omitempty"`
	Mood       int     `json:"mood"`
}

// WeekRequest represents the arguments for habit_week.
type WeekRequest struct {
	Reference string `json:"reference,omitempty"`
}

// AdviseRequest represents the arguments for habit_advise.
type AdviseRequest struct {
	Date string `json:"date,omitempty"`
}

// HistoryRequest represents the arguments for habit_history.
type HistoryRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// ExportRequest represents the arguments for habit_export.
type ExportRequest struct {
	Path  string `json:"path,omitempty"`
	Since string `json:"since,omitempty"`
}

// TaxonomyRequest represents the arguments for habit_taxonomy.
type TaxonomyRequest struct {
	Category string `json:"category,omitempty"`
}

// Handler implementations

// HandleLog handles the habit_log tool call.
func (h *Handlers) HandleLog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[LogRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Log(h.store, h.tax, ops.LogInput{
		Date:       input.Date,
		Foods:      input.Foods,
		SleepHours: input.SleepHours,
		Exercise:   input.Exercise,
		Mood:       input.Mood,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleWeek handles the habit_week tool call.
func (h *Handlers) HandleWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[WeekRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Week(h.store, h.tax, ops.WeekInput{Reference: input.Reference})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAdvise handles the habit_advise tool call.
func (h *Handlers) HandleAdvise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AdviseRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Advise(h.store, h.tax, ops.AdviseInput{Date: input.Date})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleHistory handles the habit_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.History(h.store, ops.HistoryInput{Limit: input.Limit, Offset: input.Offset})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleExport handles the habit_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Export(h.store, h.cfg, ops.ExportInput{Path: input.Path, Since: input.Since})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleTaxonomy handles the habit_taxonomy tool call.
func (h *Handlers) HandleTaxonomy(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TaxonomyRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.Category != "" {
		cat, ok := h.tax.Category(input.Category)
		if !ok {
			return errorResult(errors.NewNotFound(input.Category)), nil
		}
		return successResult(map[string]any{"category": cat})
	}

	return successResult(map[string]any{
		"categories":       h.tax.Categories(),
		"plant_vocabulary": h.tax.PlantVocabulary(),
	})
}

// errorResult builds an error CallToolResult from a structured error.
// Uses IsError: true so MCP clients recognize failures properly.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if appErr, ok := err.(*errors.Error); ok {
		errorObj := map[string]any{
			"code":    appErr.Code,
			"message": appErr.Message,
			"status":  appErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths
		if appErr.Code != errors.ErrInternal && appErr.Details != nil {
			errorObj["details"] = appErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult builds a success CallToolResult with JSON content.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
