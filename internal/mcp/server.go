package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/piatra-automation/strudel-snippets/internal/config"
	"github.com/piatra-automation/strudel-snippets/internal/library"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"snippet_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"snippet_get": {
		def:     getToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGet },
	},
	"snippet_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"snippet_categories": {
		def:     categoriesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCategories },
	},
	"snippet_random": {
		def:     randomToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRandom },
	},
	"snippet_stats": {
		def:     statsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStats },
	},
	"snippet_menu": {
		def:     menuToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleMenu },
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

// NewServer creates a new MCP server with snippet tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(lib *library.Library, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"strudel-snippets",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(lib, cfg)

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
func Run(lib *library.Library, cfg *config.Config, version string) error {
	s := NewServer(lib, cfg, version)
	return server.ServeStdio(s)
}
