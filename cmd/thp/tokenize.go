package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/thp-lang/thp/internal/compiler"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

func tokenizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "tokenize",
		Usage: "read THP from stdin and print its tokens as JSON",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Value:   int(compiler.LevelCheck),
				Usage:   "0: lex only, 1: also parse, 2: also type check",
			},
		},
		Action: runTokenize,
	}
}

func runTokenize(c *cli.Context) error {
	level := compiler.Level(c.Int("level"))
	if level < compiler.LevelLex || level > compiler.LevelCheck {
		return cli.Exit(fmt.Sprintf("invalid level %d, expected 0, 1 or 2", c.Int("level")), 1)
	}

	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	out, err := tokenizeJSON(string(data), level)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, string(out))
	return err
}

// tokenizeJSON encodes the outcome of analyzing source as
// {"Ok": tokens}, {"MixedErr": [tokens, diagnostic]} or {"Err": diagnostic}.
func tokenizeJSON(source string, level compiler.Level) ([]byte, error) {
	tokens, err := compiler.Analyze(source, level)
	if err == nil {
		return json.Marshal(map[string][]token.Token{"Ok": tokens})
	}

	var d *errors.Diagnostic
	if !stderrors.As(err, &d) {
		return nil, err
	}
	if tokens == nil {
		return json.Marshal(map[string]*errors.Diagnostic{"Err": d})
	}
	return json.Marshal(map[string][2]any{"MixedErr": {tokens, d}})
}
