package mcp

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/piatra-automation/strudel-snippets/internal/config"
	"github.com/piatra-automation/strudel-snippets/internal/errors"
	"github.com/piatra-automation/strudel-snippets/internal/library"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	lib *library.Library
	cfg *config.Config

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewHandlers creates a new Handlers instance with a time-seeded generator.
func NewHandlers(lib *library.Library, cfg *config.Config) *Handlers {
	return &Handlers{
		lib: lib,
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the random source. Tests use this to get deterministic picks.
func (h *Handlers) SetRand(rng *rand.Rand) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rng = rng
}

// Request types for each tool

// SearchRequest represents the arguments for snippet_search.
type SearchRequest struct {
	Query      string `json:"query"`
	InText     bool   `json:"in_text,omitempty"`
	Category   string `json:"category,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

// GetRequest represents the arguments for snippet_get.
type GetRequest struct {
	Path string `json:"path"`
}

// ListRequest represents the arguments for snippet_list.
type ListRequest struct {
	Category string `json:"category,omitempty"`
	Folder   string `json:"folder,omitempty"`
}

// RandomRequest represents the arguments for snippet_random.
type RandomRequest struct {
	Category string `json:"category,omitempty"`
}

// Output types

// SearchOutput contains the result of snippet_search.
type SearchOutput struct {
	Query string           `json:"query"`
	Items []library.Result `json:"items"`
	Count int              `json:"count"`
}

// ListOutput contains the result of snippet_list.
type ListOutput struct {
	Items []*library.Entry `json:"items"`
	Count int              `json:"count"`
}

// CategoriesOutput contains the result of snippet_categories.
type CategoriesOutput struct {
	Categories []string `json:"categories"`
}

// RandomOutput contains the result of snippet_random. Found is false when the
// (filtered) library is empty; that is a normal outcome, not an error.
type RandomOutput struct {
	Found   bool           `json:"found"`
	Snippet *library.Entry `json:"snippet,omitempty"`
}

// MenuOutput contains the result of snippet_menu.
type MenuOutput struct {
	Description string             `json:"description,omitempty"`
	Menu        []library.MenuItem `json:"menu"`
}

// Handler implementations

// HandleSearch handles the snippet_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	maxResults := input.MaxResults
	if maxResults == 0 {
		maxResults = h.cfg.MaxResults
	}

	results, err := h.lib.Search(input.Query, library.Options{
		InText:     input.InText,
		Category:   input.Category,
		MaxResults: maxResults,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(SearchOutput{
		Query: input.Query,
		Items: results,
		Count: len(results),
	})
}

// HandleGet handles the snippet_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Path == "" {
		return errorResult(errors.NewInvalidRequest("path is required")), nil
	}

	entry, ok := h.lib.Lookup(input.Path)
	if !ok {
		return errorResult(errors.NewNotFound(input.Path)), nil
	}

	return successResult(entry)
}

// HandleList handles the snippet_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	if input.Category != "" && input.Folder != "" {
		return errorResult(errors.NewInvalidRequest("specify category or folder, not both")), nil
	}

	var items []*library.Entry
	switch {
	case input.Category != "":
		items = h.lib.ByCategory(input.Category)
	case input.Folder != "":
		items = h.lib.ByFolder(input.Folder)
	default:
		items = h.lib.Entries()
	}

	return successResult(ListOutput{Items: items, Count: len(items)})
}

// HandleCategories handles the snippet_categories tool call.
func (h *Handlers) HandleCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(CategoriesOutput{Categories: h.lib.Categories()})
}

// HandleRandom handles the snippet_random tool call.
func (h *Handlers) HandleRandom(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RandomRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	h.mu.Lock()
	entry, ok := h.lib.Random(h.rng, input.Category)
	h.mu.Unlock()

	if !ok {
		return successResult(RandomOutput{Found: false})
	}
	return successResult(RandomOutput{Found: true, Snippet: entry})
}

// HandleStats handles the snippet_stats tool call.
func (h *Handlers) HandleStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(h.lib.Stats())
}

// HandleMenu handles the snippet_menu tool call.
func (h *Handlers) HandleMenu(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return successResult(MenuOutput{
		Description: h.lib.Description(),
		Menu:        h.lib.Menu(),
	})
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sErr, ok := err.(*errors.SnipError); ok {
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": sErr.Message,
			"status":  sErr.Status,
		}
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
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

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
