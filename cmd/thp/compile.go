package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/thp-lang/thp/internal/cache"
	"github.com/thp-lang/thp/internal/compiler"
	"github.com/thp-lang/thp/internal/compiler/errors"
	"github.com/thp-lang/thp/internal/compiler/generator"
)

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Aliases:   []string{"c"},
		Usage:     "compile THP files to PHP",
		ArgsUsage: "<files...>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output file, or directory when compiling several files",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "print the PHP instead of writing files",
			},
			&cli.StringFlag{
				Name:    "cache",
				Usage:   "sqlite database caching compile results",
				EnvVars: []string{"THP_CACHE"},
			},
			&cli.BoolFlag{
				Name:  "source-map",
				Usage: "also write a <output>.map.json line map",
			},
		},
		Action: runCompile,
	}
}

func runCompile(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return cli.Exit("Usage: thp compile [-o output] <files...>", 1)
	}

	var store *cache.Cache
	if path := c.String("cache"); path != "" {
		var err error
		if store, err = cache.Open(path); err != nil {
			return err
		}
		defer store.Close()
		slog.Debug("cache opened", "path", path)
	}

	el := errors.NewErrorList()
	for _, file := range files {
		if err := compileFile(c, store, file, len(files)); err != nil {
			el.Add(file, err)
		}
	}
	if el.HasErrors() {
		return cli.Exit(el.Error(), 1)
	}
	return nil
}

func compileFile(c *cli.Context, store *cache.Cache, file string, count int) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	source := string(data)

	php, sourceMap, err := compileSource(c, store, source)
	if err != nil {
		var d *errors.Diagnostic
		if stderrors.As(err, &d) {
			errors.Render(c.App.ErrWriter, source, file, d)
		}
		return err
	}

	if c.Bool("stdout") {
		_, err := fmt.Fprint(c.App.Writer, php)
		return err
	}

	output := outputPath(file, c.String("output"), count)
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(output, []byte(php), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	if sourceMap != nil {
		data, err := json.MarshalIndent(sourceMap, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding source map: %w", err)
		}
		if err := os.WriteFile(output+".map.json", data, 0644); err != nil {
			return fmt.Errorf("writing source map: %w", err)
		}
	}

	fmt.Fprintf(c.App.Writer, "Generated %s successfully\n", output)
	return nil
}

// compileSource compiles through the cache when one is configured. Source
// maps are never cached.
func compileSource(c *cli.Context, store *cache.Cache, source string) (string, *generator.SourceMap, error) {
	if c.Bool("source-map") {
		result, err := compiler.CompileWithSourceMap(source)
		if err != nil {
			return "", nil, err
		}
		return result.PHP, result.SourceMap, nil
	}
	if store == nil {
		php, err := compiler.Compile(source)
		return php, nil, err
	}

	php, hit, err := store.Compile(c.Context, source)
	slog.Debug("cache lookup", "hit", hit, "key", cache.Key(source)[:12])
	return php, nil, err
}

// outputPath picks where the PHP for input goes. Without -o it sits next to
// input; with several inputs -o names a directory.
func outputPath(input, output string, count int) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".php"
	if output == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	if count > 1 || strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(output, name)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, name)
	}
	return output
}
