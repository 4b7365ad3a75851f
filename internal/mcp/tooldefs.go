package mcp

import "github.com/mark3labs/mcp-go/mcp"

var searchToolDef = mcp.NewTool("snippet_search",
	mcp.WithDescription("Search the snippet library by name, path, or body. Results are relevance-ranked: exact name matches first, then name substrings, then path substrings, with shallower entries ahead on ties."),
	mcp.WithString("query", mcp.Required(),
		mcp.Description("Case-insensitive substring to match")),
	mcp.WithBoolean("in_text",
		mcp.Description("Also match inside snippet bodies")),
	mcp.WithString("category",
		mcp.Description("Restrict results to one category (case-insensitive)")),
	mcp.WithNumber("max_results",
		mcp.Description("Cap on collected matches (default 20)")),
)

var getToolDef = mcp.NewTool("snippet_get",
	mcp.WithDescription("Fetch a single snippet by its full slash-joined path, e.g. \"Drums/Breaks/Amen\"."),
	mcp.WithString("path", mcp.Required(),
		mcp.Description("Full slash-joined snippet path")),
)

var listToolDef = mcp.NewTool("snippet_list",
	mcp.WithDescription("List snippets, optionally filtered by category (case-insensitive equality) or by folder path (strict descendants only)."),
	mcp.WithString("category",
		mcp.Description("Filter by category")),
	mcp.WithString("folder",
		mcp.Description("Filter by folder path; returns strict descendants")),
)

var categoriesToolDef = mcp.NewTool("snippet_categories",
	mcp.WithDescription("List the distinct categories in the library."),
)

var randomToolDef = mcp.NewTool("snippet_random",
	mcp.WithDescription("Pick a uniformly random snippet, optionally from one category."),
	mcp.WithString("category",
		mcp.Description("Restrict the pick to one category (case-insensitive)")),
)

var statsToolDef = mcp.NewTool("snippet_stats",
	mcp.WithDescription("Summarize the library: total snippets, category count, and per-category detail."),
)

var menuToolDef = mcp.NewTool("snippet_menu",
	mcp.WithDescription("Return the ordered folder/snippet tree annotated with full paths, suitable for rendering a menu."),
)
