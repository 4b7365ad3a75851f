package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/piatra-automation/strudel-snippets/internal/config"
	"github.com/piatra-automation/strudel-snippets/internal/errors"
	"github.com/piatra-automation/strudel-snippets/internal/library"
	"github.com/piatra-automation/strudel-snippets/internal/web"
)

// appState carries the loaded library and config into CLI commands. The
// --library flag can swap the library out after flag parsing.
type appState struct {
	lib *library.Library
	cfg *config.Config
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(state *appState) *cli.App {
	app := &cli.App{
		Name:    "snips",
		Usage:   "Strudel snippet library",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "library", Usage: "Path to a snippet document (JSON or YAML)"},
		},
		Before: func(c *cli.Context) error {
			if state == nil {
				return nil
			}
			if path := c.String("library"); path != "" {
				lib, err := loadLibrary(path)
				if err != nil {
					return outputError(err)
				}
				state.lib = lib
			}
			return nil
		},
		Commands: []*cli.Command{
			searchCmd(state),
			showCmd(state),
			listCmd(state),
			categoriesCmd(state),
			randomCmd(state),
			statsCmd(state),
			menuCmd(state),
			serveCmd(state),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// searchCmd creates the search command.
func searchCmd(state *appState) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search snippets by name, path, or pattern text",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "in-text", Usage: "Also match inside snippet bodies"},
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Restrict to one category"},
			&cli.IntFlag{Name: "max-results", Aliases: []string{"n"}, Usage: "Cap on collected matches (default 20)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("query argument is required"))
			}
			query := c.Args().First()

			maxResults := c.Int("max-results")
			if maxResults == 0 {
				maxResults = state.cfg.MaxResults
			}

			results, err := state.lib.Search(query, library.Options{
				InText:     c.Bool("in-text"),
				Category:   c.String("category"),
				MaxResults: maxResults,
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(map[string]any{
				"query": query,
				"items": results,
				"count": len(results),
			})
		},
	}
}

// showCmd creates the show command.
func showCmd(state *appState) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single snippet by its full path",
		ArgsUsage: "<path>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}
			path := c.Args().First()

			entry, ok := state.lib.Lookup(path)
			if !ok {
				return outputError(errors.NewNotFound(path))
			}

			return outputJSON(entry)
		},
	}
}

// listCmd creates the list command.
func listCmd(state *appState) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List snippets, optionally filtered by category or folder",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Filter by category (case-insensitive)"},
			&cli.StringFlag{Name: "folder", Aliases: []string{"f"}, Usage: "Filter by folder path (strict descendants)"},
		},
		Action: func(c *cli.Context) error {
			category := c.String("category")
			folder := c.String("folder")
			if category != "" && folder != "" {
				return outputError(errors.NewInvalidRequest("specify category or folder, not both"))
			}

			var items []*library.Entry
			switch {
			case category != "":
				items = state.lib.ByCategory(category)
			case folder != "":
				items = state.lib.ByFolder(folder)
			default:
				items = state.lib.Entries()
			}

			return outputJSON(map[string]any{
				"items": items,
				"count": len(items),
			})
		},
	}
}

// categoriesCmd creates the categories command.
func categoriesCmd(state *appState) *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "List the distinct categories in the library",
		Action: func(c *cli.Context) error {
			return outputJSON(map[string]any{
				"categories": state.lib.Categories(),
			})
		},
	}
}

// randomCmd creates the random command.
func randomCmd(state *appState) *cli.Command {
	return &cli.Command{
		Name:  "random",
		Usage: "Pick a uniformly random snippet",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Restrict the pick to one category"},
		},
		Action: func(c *cli.Context) error {
			rng := rand.New(rand.NewSource(time.Now().UnixNano()))

			entry, ok := state.lib.Random(rng, c.String("category"))
			if !ok {
				return outputJSON(map[string]any{"found": false})
			}
			return outputJSON(map[string]any{"found": true, "snippet": entry})
		},
	}
}

// statsCmd creates the stats command.
func statsCmd(state *appState) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Summarize the library",
		Action: func(c *cli.Context) error {
			return outputJSON(state.lib.Stats())
		},
	}
}

// menuCmd creates the menu command.
func menuCmd(state *appState) *cli.Command {
	return &cli.Command{
		Name:  "menu",
		Usage: "Print the ordered folder/snippet tree with full paths",
		Action: func(c *cli.Context) error {
			return outputJSON(map[string]any{
				"description": state.lib.Description(),
				"menu":        state.lib.Menu(),
			})
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(state *appState) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "Listen address (default from config)"},
		},
		Action: func(c *cli.Context) error {
			addr := c.String("addr")
			if addr == "" {
				addr = state.cfg.WebAddr
			}

			srv := web.NewServer(state.lib, state.cfg, Version, addr)
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.SnipError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
