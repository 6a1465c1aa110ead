// Command thp compiles THP source files to PHP.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/thp-lang/thp/internal/compiler"
)

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "thp",
		Usage:     "compile THP to PHP",
		Version:   compiler.Version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "log every step to stderr",
				EnvVars: []string{"THP_VERBOSE"},
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelWarn
			if c.Bool("verbose") {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: []*cli.Command{
			compileCommand(),
			tokenizeCommand(),
			replCommand(),
			placeholder("format", []string{"f"}, "format THP source files"),
			placeholder("init", nil, "create a new THP project"),
			placeholder("build", nil, "compile a whole project"),
			placeholder("fmt", nil, "alias of format"),
			placeholder("watch", []string{"w"}, "recompile files when they change"),
		},
	}
}
