package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/clipstash/clipstash/internal/capture"
	"github.com/clipstash/clipstash/internal/config"
	"github.com/clipstash/clipstash/internal/errors"
	"github.com/clipstash/clipstash/internal/ops"
	"github.com/clipstash/clipstash/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "clipstash",
		Usage:   "Local clipboard history store",
		Version: Version,
		Commands: []*cli.Command{
			addCmd(db, cfg),
			latestCmd(db),
			getCmd(db),
			listCmd(db),
			searchCmd(db),
			favoriteCmd(db),
			clearCmd(db),
			pruneCmd(db, cfg),
			watchCmd(db, cfg),
			exportCmd(db, baseDir),
			importCmd(db, cfg),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addCmd creates the add command.
func addCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Store text in the history (argument or piped stdin)",
		ArgsUsage: "[content]",
		Action: func(c *cli.Context) error {
			var content string
			if c.NArg() > 0 {
				content = c.Args().First()
			} else if stdinHasData() {
				data, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				content = data
			}

			if content == "" {
				return outputError(errors.NewInvalidRequest("content must be given as an argument or piped via stdin"))
			}

			output, err := ops.Add(db, cfg, ops.AddInput{Content: content})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// latestCmd creates the latest command.
func latestCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "latest",
		Usage: "Get the most recently captured record",
		Action: func(c *cli.Context) error {
			output, err := ops.Latest(db)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get one or more records by id",
		ArgsUsage: "<id> [id...]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("at least one id is required"))
			}

			ids := make([]int64, 0, c.NArg())
			for _, arg := range c.Args().Slice() {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid id %q", arg)))
				}
				ids = append(ids, id)
			}

			// Single id: full fetch with NOT_FOUND semantics
			if len(ids) == 1 {
				output, err := ops.Fetch(db, ops.FetchInput{ID: ids[0]})
				if err != nil {
					return outputError(err)
				}
				return outputJSON(output)
			}

			output, err := ops.FetchMany(db, ops.FetchManyInput{IDs: ids})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List history previews, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
			&cli.BoolFlag{Name: "favorites", Aliases: []string{"f"}, Usage: "Restrict to favorited records"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{
				Limit:         c.Int("limit"),
				Offset:        c.Int("offset"),
				FavoritesOnly: c.Bool("favorites"),
			}

			output, err := ops.List(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search history for a literal substring",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum results"},
		},
		Action: func(c *cli.Context) error {
			input := ops.SearchInput{
				Query: c.Args().First(),
				Limit: c.Int("limit"),
			}

			output, err := ops.Search(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// favoriteCmd creates the favorite command.
func favoriteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "favorite",
		Usage:     "Mark a record as favorite",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("id is required"))
			}

			id, err := strconv.ParseInt(c.Args().First(), 10, 64)
			if err != nil {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid id %q", c.Args().First())))
			}

			output, err := ops.Favorite(db, ops.FavoriteInput{ID: id})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// clearCmd creates the clear command.
func clearCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete the entire history, favorites included",
		Action: func(c *cli.Context) error {
			output, err := ops.Clear(db)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// pruneCmd creates the prune command.
func pruneCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "prune",
		Usage: "Trim the history back to capacity",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "capacity", Aliases: []string{"c"}, Usage: "Rows to retain (default: configured max_history)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Prune(db, cfg, ops.PruneInput{Capacity: c.Int("capacity")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// watchCmd creates the watch command.
func watchCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Capture clips from stdin, one per line (pair with a clipboard watcher like clipnotify)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "null", Aliases: []string{"0"}, Usage: "Chunks are NUL-delimited instead of newline-delimited"},
		},
		Action: func(c *cli.Context) error {
			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("watch reads clips from piped stdin"))
			}

			summary, err := capture.Run(os.Stdin, db, cfg, capture.Options{
				NullDelimited: c.Bool("null"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(summary)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the history to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.clipstash/exports/history-<ulid>.jsonl)"},
			&cli.BoolFlag{Name: "favorites", Aliases: []string{"f"}, Usage: "Export only favorited records"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ExportInput{
				Path:          c.String("path"),
				BaseDir:       baseDir,
				FavoritesOnly: c.Bool("favorites"),
			}

			output, err := ops.Export(db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import a JSONL export",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Import(db, cfg, ops.ImportInput{Path: c.String("path")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web UI for browsing the history",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8535, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
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
	if clipErr, ok := err.(*errors.ClipError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", clipErr.Code, clipErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
