package web

import (
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/piatra-automation/strudel-snippets/internal/config"
	"github.com/piatra-automation/strudel-snippets/internal/errors"
	"github.com/piatra-automation/strudel-snippets/internal/library"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	lib      *library.Library
	cfg      *config.Config
	renderer *Renderer

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewHandlers creates Handlers over the given library with a time-seeded
// random source.
func NewHandlers(lib *library.Library, cfg *config.Config, renderer *Renderer) *Handlers {
	return &Handlers{
		lib:      lib,
		cfg:      cfg,
		renderer: renderer,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand replaces the random source. Tests use this to get deterministic picks.
func (h *Handlers) SetRand(rng *rand.Rand) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rng = rng
}

// HandleBrowse handles GET / — the collection menu with stats.
func (h *Handlers) HandleBrowse(w http.ResponseWriter, r *http.Request) {
	h.renderer.renderPage(w, "browse", BrowsePageData{
		PageData: PageData{
			Title:   "Browse",
			Version: h.renderer.version,
			Nav:     "browse",
		},
		Description: renderMarkdown(h.lib.Description()),
		Menu:        h.lib.Menu(),
		Stats:       h.lib.Stats(),
	})
}

// HandleList handles GET /snippets — flat listing with optional category or
// folder filter.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	folder := r.URL.Query().Get("folder")

	if category != "" && folder != "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("specify category or folder, not both"))
		return
	}

	var items []*library.Entry
	switch {
	case category != "":
		items = h.lib.ByCategory(category)
	case folder != "":
		items = h.lib.ByFolder(folder)
	default:
		items = h.lib.Entries()
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData: PageData{
			Title:   "Snippets",
			Version: h.renderer.version,
			Nav:     "snippets",
		},
		Items:      items,
		Categories: h.lib.Categories(),
		Category:   category,
		Folder:     folder,
	})
}

// HandleSearch handles GET /search — ranked substring search.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	inText := parseBoolParam(r, "in_text")
	category := r.URL.Query().Get("category")

	data := SearchPageData{
		PageData: PageData{
			Title:   "Search",
			Version: h.renderer.version,
			Nav:     "search",
		},
		Query:      query,
		InText:     inText,
		Category:   category,
		Categories: h.lib.Categories(),
		HasQuery:   query != "",
	}

	if !data.HasQuery {
		h.renderer.renderPage(w, "search", data)
		return
	}

	results, err := h.lib.Search(query, library.Options{
		InText:     inText,
		Category:   category,
		MaxResults: parseIntParam(r, "max_results", h.cfg.MaxResults),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data.Items = results
	h.renderer.renderPage(w, "search", data)
}

// HandleDetail handles GET /snippets/{path...} — view a single snippet.
func (h *Handlers) HandleDetail(w http.ResponseWriter, r *http.Request) {
	path := r.PathValue("path")
	if path == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("snippet path is required"))
		return
	}

	entry, ok := h.lib.Lookup(path)
	if !ok {
		h.renderer.renderError(w, r, errors.NewNotFound(path))
		return
	}

	h.renderer.renderPage(w, "detail", DetailPageData{
		PageData: PageData{
			Title:   entry.Name,
			Version: h.renderer.version,
			Nav:     "snippets",
		},
		Entry:       entry,
		Highlighted: highlightSnippet(entry.Text),
	})
}

// HandleRandom handles GET /random — redirect to a random snippet's detail
// page, optionally restricted to one category.
func (h *Handlers) HandleRandom(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	h.mu.Lock()
	entry, ok := h.lib.Random(h.rng, category)
	h.mu.Unlock()

	if !ok {
		h.renderer.renderError(w, r, errors.NewNotFound("random snippet"))
		return
	}

	http.Redirect(w, r, snippetURL(entry.Path), http.StatusFound)
}

// snippetURL builds the detail URL for a snippet path, escaping each segment
// while keeping slashes as separators.
func snippetURL(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/snippets/" + strings.Join(segments, "/")
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}
