package main

import (
	"github.com/urfave/cli/v2"

	"github.com/thp-lang/thp/internal/repl"
)

func replCommand() *cli.Command {
	return &cli.Command{
		Name:    "repl",
		Aliases: []string{"r"},
		Usage:   "compile THP line by line",
		Action: func(c *cli.Context) error {
			return repl.Run(c.Context, c.App.Reader, c.App.Writer, c.App.ErrWriter)
		},
	}
}
