package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/piatra-automation/strudel-snippets/internal/config"
	"github.com/piatra-automation/strudel-snippets/internal/library"
	"github.com/piatra-automation/strudel-snippets/internal/mcp"
	"github.com/piatra-automation/strudel-snippets/internal/snippet"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"search": true, "show": true, "list": true,
	"categories": true, "random": true, "stats": true,
	"menu": true, "serve": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	// Known subcommand → CLI
	if cliCommands[arg] {
		return true
	}
	// --help or --version → CLI
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   ___ _ __ (_)_ __  ___
  / __| '_ \| | '_ \/ __|
  \__ \ | | | | |_) \__ \
  |___/_| |_|_| .__/|___/
              |_|

  Strudel snippet library

  Usage: snips <command> [options]
         snips --help

  MCP server mode requires piped input.`)
}

// loadLibrary builds the in-memory index from the configured document, or
// from the embedded starter collection when no path is set.
func loadLibrary(path string) (*library.Library, error) {
	var (
		doc *snippet.Document
		err error
	)
	if path == "" {
		doc, err = snippet.DefaultDocument()
	} else {
		doc, err = snippet.Load(path)
	}
	if err != nil {
		return nil, err
	}
	return library.New(doc)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before loading anything
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}

	baseDir := filepath.Join(homeDir, ".snips")

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Environment override for the library document
	if path := os.Getenv("SNIPS_LIBRARY"); path != "" {
		cfg.LibraryPath = path
	}

	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		fmt.Fprintf(os.Stderr, "warning: unknown tools in disabled_tools: %v\n", unknown)
	}

	lib, err := loadLibrary(cfg.LibraryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load library: %v\n", err)
		os.Exit(1)
	}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(&appState{lib: lib, cfg: cfg})
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'snips --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	if err := mcp.Run(lib, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
