package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/nutrimind/internal/archive"
	"github.com/hpungsan/nutrimind/internal/errors"
	"github.com/hpungsan/nutrimind/internal/ops"
	"github.com/hpungsan/nutrimind/internal/report"
	"github.com/hpungsan/nutrimind/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(env *appEnv) *cli.App {
	app := &cli.App{
		Name:    "nutrimind",
		Usage:   "Registro de hábitos y diversidad vegetal",
		Version: Version,
		Commands: []*cli.Command{
			logCmd(env),
			weekCmd(env),
			adviseCmd(env),
			historyCmd(env),
			exportCmd(env),
			importCmd(env),
			archiveCmd(env),
			taxonomyCmd(env),
			serveCmd(env),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// logCmd creates the log command.
func logCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "log",
		Usage: "Log one day's habits",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Date (YYYY-MM-DD, default: today)"},
			&cli.StringFlag{Name: "foods", Aliases: []string{"f"}, Usage: "Comma-separated foods"},
			&cli.Float64Flag{Name: "sleep", Aliases: []string{"s"}, Required: true, Usage: "Hours slept (0-24)"},
			&cli.StringFlag{Name: "exercise", Aliases: []string{"e"}, Usage: "Exercise description, e.g. '45 min caminata'"},
			&cli.IntFlag{Name: "mood", Aliases: []string{"m"}, Required: true, Usage: "Mood rating (1-5)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Log(env.store, env.tax, ops.LogInput{
				Date:       c.String("date"),
				Foods:      c.String("foods"),
				SleepHours: c.Float64("sleep"),
				Exercise:   c.String("exercise"),
				Mood:       c.Int("mood"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// weekCmd creates the week command.
func weekCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "week",
		Usage: "Show the weekly plant-diversity report",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Reference date (YYYY-MM-DD, default: today)"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON instead of markdown"},
		},
		Action: func(c *cli.Context) error {
			input := ops.WeekInput{Reference: c.String("date")}

			if c.Bool("json") {
				output, err := ops.Week(env.store, env.tax, input)
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.WeekReport(env.store, env.tax, input)
			if err != nil {
				return outputError(err)
			}
			fmt.Fprint(os.Stdout, output.Markdown)
			return nil
		},
	}
}

// adviseCmd creates the advise command.
func adviseCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "advise",
		Usage: "Re-evaluate advisories for a date",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "date", Aliases: []string{"d"}, Usage: "Date (YYYY-MM-DD, default: today)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Advise(env.store, env.tax, ops.AdviseInput{Date: c.String("date")})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List logged entries, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum entries to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Entries to skip"},
			&cli.BoolFlag{Name: "json", Usage: "Output JSON instead of a table"},
		},
		Action: func(c *cli.Context) error {
			limit := c.Int("limit")
			if limit == 0 {
				limit = env.cfg.HistoryPageSize
			}

			output, err := ops.History(env.store, ops.HistoryInput{
				Limit:  limit,
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("json") {
				return outputJSON(output)
			}
			fmt.Fprint(os.Stdout, report.HistoryTable(output.Items))
			for _, n := range output.Notices {
				fmt.Fprintf(os.Stderr, "notice: %s\n", n)
			}
			return nil
		},
	}
}

// exportCmd creates the export command.
func exportCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the ledger to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.nutrimind/exports/nutrimind-<timestamp>.jsonl)"},
			&cli.StringFlag{Name: "since", Usage: "Only entries on or after this date (YYYY-MM-DD)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(env.store, env.cfg, ops.ExportInput{
				Path:  c.String("path"),
				Since: c.String("since"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import entries from a markdown food journal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Journal file path (.md)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ImportJournal(env.store, env.cfg, ops.ImportInput{
				Path: c.String("path"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// archiveCmd creates the archive command with its sync/stats subcommands.
func archiveCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "archive",
		Usage: "Long-term SQLite archive of the ledger",
		Subcommands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "Copy ledger entries into the archive (idempotent)",
				Action: func(c *cli.Context) error {
					db, err := archive.Init(env.baseDir, env.cfg.ArchiveFilename)
					if err != nil {
						return outputError(errors.NewInternal(err))
					}
					defer db.Close()

					output, err := ops.ArchiveSync(db, env.store)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "stats",
				Usage: "Per-week diversity scores over the archive",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "weeks", Aliases: []string{"w"}, Usage: "Maximum weeks to show"},
				},
				Action: func(c *cli.Context) error {
					db, err := archive.Init(env.baseDir, env.cfg.ArchiveFilename)
					if err != nil {
						return outputError(errors.NewInternal(err))
					}
					defer db.Close()

					output, err := ops.ArchiveStats(db, env.tax, ops.ArchiveStatsInput{
						Limit: c.Int("weeks"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// taxonomyCmd creates the taxonomy command.
func taxonomyCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "taxonomy",
		Usage: "Show the food taxonomy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Show a single category"},
		},
		Action: func(c *cli.Context) error {
			if name := c.String("category"); name != "" {
				cat, ok := env.tax.Category(name)
				if !ok {
					return outputError(errors.NewNotFound(name))
				}
				return outputJSON(cat)
			}
			return outputJSON(map[string]any{
				"categories":       env.tax.Categories(),
				"plant_vocabulary": env.tax.PlantVocabulary(),
			})
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(env *appEnv) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Value: 8465, Usage: "Port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(env.store, env.tax, env.cfg, Version, c.String("bind"), c.Int("port"))
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
	if appErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", appErr.Code, appErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
