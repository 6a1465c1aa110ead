package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// placeholder declares a command that is planned but not available yet.
func placeholder(name string, aliases []string, usage string) *cli.Command {
	return &cli.Command{
		Name:    name,
		Aliases: aliases,
		Usage:   usage + " (not implemented yet)",
		Action: func(c *cli.Context) error {
			return cli.Exit(fmt.Sprintf("thp %s: not implemented yet", name), 1)
		},
	}
}
