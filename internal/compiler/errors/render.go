package errors

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Render writes d as a human readable report: a header, the file position
// of the primary offset, then every label under its source line.
func Render(w io.Writer, source, file string, d *Diagnostic) {
	pos := Locate(source, d.Offset)
	pos.File = file

	fmt.Fprintf(w, "error[%s]: %s\n", d.Code, d.Message())
	gutter := strings.Repeat(" ", len(strconv.Itoa(lastLine(source, d))))
	fmt.Fprintf(w, "%s--> %s\n", gutter, pos)
	fmt.Fprintf(w, "%s |\n", gutter)

	for _, label := range d.Labels {
		line, lineStart := lineAt(source, label.Start)
		n := Locate(source, label.Start).Line
		fmt.Fprintf(w, "%*d | %s\n", len(gutter), n, line)

		start := label.Start - lineStart
		if start > len(line) {
			start = len(line)
		}
		end := label.End - lineStart
		if end > len(line) {
			end = len(line)
		}
		carets := displayWidth(line[start:end])
		if carets < 1 {
			carets = 1
		}
		fmt.Fprintf(w, "%s | %s%s %s\n", gutter, padding(line[:start]), strings.Repeat("^", carets), label.Message)
	}

	fmt.Fprintf(w, "%s |\n", gutter)
	if d.Note != "" {
		fmt.Fprintf(w, "%s = note: %s\n", gutter, d.Note)
	}
	if d.Help != "" {
		fmt.Fprintf(w, "%s = help: %s\n", gutter, d.Help)
	}
}

// RenderString is Render into a string.
func RenderString(source, file string, d *Diagnostic) string {
	var b strings.Builder
	Render(&b, source, file, d)
	return b.String()
}

func lastLine(source string, d *Diagnostic) int {
	max := Locate(source, d.Offset).Line
	for _, l := range d.Labels {
		if n := Locate(source, l.Start).Line; n > max {
			max = n
		}
	}
	return max
}

// lineAt returns the line containing offset, without its newline, and the
// offset where that line starts.
func lineAt(source string, offset int) (string, int) {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := strings.IndexByte(source[offset:], '\n')
	if end < 0 {
		return source[start:], start
	}
	return source[start : offset+end], start
}

// padding reproduces the whitespace needed to reach the end of prefix on a
// terminal, keeping tabs so the caret lines up with the echoed source.
func padding(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteRune('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runeWidth(r)))
	}
	return b.String()
}

func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		n += runeWidth(r)
	}
	return n
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
