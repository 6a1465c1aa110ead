// Package repl reads THP from a stream, compiles each input against one
// session and prints the PHP it turns into.
package repl

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/thp-lang/thp/internal/compiler"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/token"
)

const (
	Prompt         = "> "
	ContinuePrompt = "| "
)

// Run loops until in is exhausted, ctx is done or the user types exit.
// Lines are collected until their braces balance, then compiled as one
// input. Diagnostics go to errOut and the loop carries on.
func Run(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	session := compiler.NewSession()
	scanner := bufio.NewScanner(in)

	var input strings.Builder
	depth := 0
	fmt.Fprint(out, Prompt)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := scanner.Text()
		if depth == 0 && strings.TrimSpace(line) == "exit" {
			return nil
		}
		input.WriteString(line)
		input.WriteByte('\n')
		depth += braceDepth(line)

		if depth > 0 {
			fmt.Fprint(out, ContinuePrompt)
			continue
		}

		source := input.String()
		input.Reset()
		depth = 0
		if strings.TrimSpace(source) != "" {
			eval(session, source, out, errOut)
		}
		fmt.Fprint(out, Prompt)
	}
	return scanner.Err()
}

func eval(session *compiler.Session, source string, out, errOut io.Writer) {
	php, err := session.Compile(source)
	if err != nil {
		var d *errors.Diagnostic
		if stderrors.As(err, &d) {
			errors.Render(errOut, source, "repl", d)
		} else {
			fmt.Fprintln(errOut, "error:", err)
		}
		return
	}
	fmt.Fprint(out, strings.TrimPrefix(php, "<?php\n"))
}

// braceDepth is the number of braces line opens minus the number it closes,
// ignoring those inside strings and comments.
func braceDepth(line string) int {
	tokens, err := compiler.Analyze(line, compiler.LevelLex)
	if err != nil {
		return strings.Count(line, "{") - strings.Count(line, "}")
	}
	depth := 0
	for _, tok := range tokens {
		switch tok.Type {
		case token.LBRACE:
			depth++
		case token.RBRACE:
			depth--
		}
	}
	return depth
}
