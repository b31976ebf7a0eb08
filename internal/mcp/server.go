package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/nutrimind/internal/config"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"habit_log": {
		def:     logToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLog },
	},
	"habit_week": {
		def:     weekToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleWeek },
	},
	"habit_advise": {
		def:     adviseToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAdvise },
	},
	"habit_history": {
		def:     historyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleHistory },
	},
	"habit_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"habit_taxonomy": {
		def:     taxonomyToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleTaxonomy },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with NutriMind tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(store *ledger.Store, tax *taxonomy.Taxonomy, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"nutrimind",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(store, tax, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(store *ledger.Store, tax *taxonomy.Taxonomy, cfg *config.Config, version string) error {
	s := NewServer(store, tax, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
