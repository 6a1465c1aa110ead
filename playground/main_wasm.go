//go:build js && wasm

package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"syscall/js"

	"github.com/thp-lang/thp/internal/compiler"
	"github.com/thp-lang/thp/internal/compiler/errors"
)

func main() {
	js.Global().Set("compileTHP", js.FuncOf(compileTHPWrapper))

	// Keep the program alive
	select {}
}

// compileTHPWrapper returns {code, errors, diagnostic} to JavaScript.
// errors holds rendered reports, diagnostic the JSON wire form or null.
func compileTHPWrapper(this js.Value, args []js.Value) (result any) {
	defer func() {
		if r := recover(); r != nil {
			result = failure(fmt.Sprintf("panic: %v", r), nil)
		}
	}()

	if len(args) != 1 {
		return failure("expected 1 argument (source code)", nil)
	}

	source := args[0].String()
	code, err := compiler.Compile(source)
	if err == nil {
		return js.ValueOf(map[string]any{
			"code":       code,
			"errors":     []any{},
			"diagnostic": nil,
		})
	}

	var d *errors.Diagnostic
	if !stderrors.As(err, &d) {
		return failure(err.Error(), nil)
	}
	return failure(errors.RenderString(source, "playground.thp", d), d)
}

func failure(message string, d *errors.Diagnostic) js.Value {
	var diagnostic any
	if d != nil {
		if data, err := json.Marshal(d); err == nil {
			diagnostic = string(data)
		}
	}
	return js.ValueOf(map[string]any{
		"code":       "",
		"errors":     []any{message},
		"diagnostic": diagnostic,
	})
}
