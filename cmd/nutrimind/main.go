package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/hpungsan/nutrimind/internal/config"
	"github.com/hpungsan/nutrimind/internal/ledger"
	"github.com/hpungsan/nutrimind/internal/mcp"
	"github.com/hpungsan/nutrimind/internal/taxonomy"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// appEnv bundles the dependencies every command needs.
type appEnv struct {
	store   *ledger.Store
	tax     *taxonomy.Taxonomy
	cfg     *config.Config
	baseDir string
}

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"log": true, "week": true, "advise": true, "history": true,
	"export": true, "import": true, "archive": true,
	"taxonomy": true, "serve": true,
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
   _  _      _       _ __  __ _         _
  | \| |_  _| |_ _ _(_)  \/  (_)_ _  __| |
  | .' | || |  _| '_| | |\/| | | ' \/ _' |
  |_|\_|\_,_|\__|_| |_|_|  |_|_|_||_\__,_|

  Registro de hábitos y diversidad vegetal

  Usage: nutrimind <command> [options]
         nutrimind --help

  MCP server mode requires piped input.`)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before any file access
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

	baseDir := filepath.Join(homeDir, ".nutrimind")

	cfg, err := config.Load(baseDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	store, err := ledger.Open(baseDir, cfg.LedgerFilename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to open ledger: %v\n", err)
		os.Exit(1)
	}

	tax, err := taxonomy.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load taxonomy: %v\n", err)
		os.Exit(1)
	}

	env := &appEnv{store: store, tax: tax, cfg: cfg, baseDir: baseDir}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(env)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'nutrimind --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default). Unknown disabled-tool names are worth a
	// warning but should not block startup.
	if unknown := mcp.ValidateDisabledTools(cfg.DisabledTools); len(unknown) > 0 {
		logrus.WithField("tools", unknown).Warn("config disables unknown tools")
	}
	if err := mcp.Run(store, tax, cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
