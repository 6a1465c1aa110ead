package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Position represents a location in source code
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Locate converts a byte offset into a 1-based line and column. Columns count
// runes. Offsets past the end of source are clamped to it.
func Locate(source string, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	if offset < 0 {
		offset = 0
	}
	before := source[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Position{Line: line, Column: utf8.RuneCountInString(before[lineStart:]) + 1}
}

// Phase names the pipeline stage that rejected the program.
type Phase string

const (
	PhaseLexer    Phase = "lexer"
	PhaseParser   Phase = "parser"
	PhaseSemantic Phase = "semantic"
)

// Label attaches a message to the source range [Start, End).
type Label struct {
	Message string `json:"message"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
}

// Diagnostic is the single error shape produced by every stage of the
// compiler.
type Diagnostic struct {
	Code   Code
	Offset int
	Labels []Label
	Note   string
	Help   string
	Phase  Phase
}

// New builds a diagnostic with one label spanning [start, end).
func New(phase Phase, code Code, offset int, message string, start, end int) *Diagnostic {
	return &Diagnostic{
		Phase:  phase,
		Code:   code,
		Offset: offset,
		Labels: []Label{{Message: message, Start: start, End: end}},
	}
}

// WithLabel appends another label and returns d.
func (d *Diagnostic) WithLabel(message string, start, end int) *Diagnostic {
	d.Labels = append(d.Labels, Label{Message: message, Start: start, End: end})
	return d
}

func (d *Diagnostic) WithNote(note string) *Diagnostic {
	d.Note = note
	return d
}

func (d *Diagnostic) WithHelp(help string) *Diagnostic {
	d.Help = help
	return d
}

// Message returns the text of the primary label.
func (d *Diagnostic) Message() string {
	if len(d.Labels) == 0 {
		return d.Code.String()
	}
	return d.Labels[0].Message
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[%s] offset %d: %s", d.Phase, d.Offset, d.Message())
}

func (d *Diagnostic) MarshalJSON() ([]byte, error) {
	var note, help *string
	if d.Note != "" {
		note = &d.Note
	}
	if d.Help != "" {
		help = &d.Help
	}
	labels := d.Labels
	if labels == nil {
		labels = []Label{}
	}
	return json.Marshal(struct {
		Code   Code    `json:"error_code"`
		Offset int     `json:"error_offset"`
		Labels []Label `json:"labels"`
		Note   *string `json:"note"`
		Help   *string `json:"help"`
	}{d.Code, d.Offset, labels, note, help})
}

func (d *Diagnostic) UnmarshalJSON(data []byte) error {
	var raw struct {
		Code   Code    `json:"error_code"`
		Offset int     `json:"error_offset"`
		Labels []Label `json:"labels"`
		Note   *string `json:"note"`
		Help   *string `json:"help"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.Code, d.Offset, d.Labels = raw.Code, raw.Offset, raw.Labels
	d.Phase = raw.Code.Phase()
	if raw.Note != nil {
		d.Note = *raw.Note
	}
	if raw.Help != nil {
		d.Help = *raw.Help
	}
	return nil
}

// FileError ties a failure to the file being compiled.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// ErrorList collects the failures of a multi-file run
type ErrorList struct {
	Errors []*FileError
}

func NewErrorList() *ErrorList {
	return &ErrorList{}
}

func (el *ErrorList) Add(file string, err error) {
	el.Errors = append(el.Errors, &FileError{File: file, Err: err})
}

func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

func (el *ErrorList) String() string {
	s := ""
	for _, e := range el.Errors {
		s += e.Error() + "\n"
	}
	return s
}

// Err returns the list as an error, or nil when it is empty.
func (el *ErrorList) Err() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

func (el *ErrorList) Error() string {
	if len(el.Errors) == 1 {
		return el.Errors[0].Error()
	}
	return fmt.Sprintf("%d files failed to compile", len(el.Errors))
}
