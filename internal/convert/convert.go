// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert rewrites a single TypeScript file as JavaScript in place:
// it transforms the source, writes the file under its mapped extension and
// only then removes the original.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdiddy/ts2js/internal/engine"
	"github.com/pdiddy/ts2js/pkg/types"
)

// markupMarker is the literal the content heuristic looks for.
const markupMarker = "tsx"

// Recorder receives every result the converter produces, e.g. a journal.
type Recorder interface {
	Record(ctx context.Context, r types.ConversionResult) error
}

// Options configures a Converter.
type Options struct {
	// Extensions is the extension mapping; the zero value uses the default.
	Extensions types.ExtensionMap

	// MarkupDetection selects how markup mode is decided.
	MarkupDetection types.MarkupDetection

	// Out receives one status line per file. Nil discards.
	Out io.Writer

	// Color wraps status labels in ANSI colors.
	Color bool

	// Recorder, when set, is told about every result.
	Recorder Recorder
}

// Converter converts individual files. It is safe for concurrent use.
type Converter struct {
	engine     engine.Engine
	extensions types.ExtensionMap
	detection  types.MarkupDetection
	recorder   Recorder
	color      bool

	mu  sync.Mutex
	out io.Writer
}

// New returns a Converter that transforms sources with eng.
func New(eng engine.Engine, opts Options) *Converter {
	ext := opts.Extensions
	if len(ext.Inputs()) == 0 {
		ext = types.DefaultExtensionMap()
	}
	detection := opts.MarkupDetection
	if detection == "" {
		detection = types.MarkupByExtension
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Converter{
		engine:     eng,
		extensions: ext,
		detection:  detection,
		recorder:   opts.Recorder,
		color:      opts.Color,
		out:        out,
	}
}

// Plan builds the task for path. It reports false when the extension is
// not recognized.
func (c *Converter) Plan(path string) (types.ConversionTask, bool) {
	_, rule, ok := c.extensions.Lookup(path)
	if !ok {
		return types.ConversionTask{}, false
	}
	outPath, _ := c.extensions.OutputPath(path)
	dialect := types.DialectPlain
	if rule.Markup {
		dialect = types.DialectMarkup
	}
	return types.ConversionTask{InputPath: path, Dialect: dialect, OutputPath: outPath}, true
}

// ConvertFile converts the file at path. Unsupported extensions are skipped
// without touching the filesystem. On success the converted file exists at
// the mapped path and the original is gone. On failure before the write
// completes, the original is unchanged and nothing new is created.
func (c *Converter) ConvertFile(ctx context.Context, path string) types.ConversionResult {
	task, ok := c.Plan(path)
	if !ok {
		c.printf(labelSkipped, "%s (unsupported extension)", path)
		return c.record(ctx, types.ConversionResult{Status: types.ConversionSkipped, InputPath: path})
	}

	result := c.convert(ctx, task)
	if result.Succeeded() {
		c.printf(labelConverted, "%s -> %s", task.InputPath, task.OutputPath)
	} else {
		c.printf(labelFailed, "%s (%v)", task.InputPath, result.Err)
	}
	return c.record(ctx, result)
}

func (c *Converter) convert(ctx context.Context, task types.ConversionTask) types.ConversionResult {
	fail := func(err error) types.ConversionResult {
		return types.ConversionResult{Status: types.ConversionFailed, InputPath: task.InputPath, Err: err}
	}

	info, err := os.Stat(task.InputPath)
	if err != nil {
		return fail(fmt.Errorf("reading source: %w", err))
	}
	data, err := os.ReadFile(task.InputPath)
	if err != nil {
		return fail(fmt.Errorf("reading source: %w", err))
	}
	text := string(data)

	code, err := c.engine.Transform(ctx, engine.Source{
		Path:   task.InputPath,
		Text:   text,
		Markup: c.markup(task, text),
	})
	if err != nil {
		return fail(fmt.Errorf("transform failed: %w", err))
	}

	if err := writeFileAtomic(task.OutputPath, []byte(code), info.Mode().Perm()); err != nil {
		return fail(fmt.Errorf("writing %s: %w", task.OutputPath, err))
	}

	// The converted file is in place; a failed removal leaves two copies.
	if err := os.Remove(task.InputPath); err != nil {
		return types.ConversionResult{
			Status:     types.ConversionFailed,
			InputPath:  task.InputPath,
			OutputPath: task.OutputPath,
			Err:        fmt.Errorf("removing original: %w", err),
		}
	}

	return types.ConversionResult{
		Status:     types.ConversionDone,
		InputPath:  task.InputPath,
		OutputPath: task.OutputPath,
	}
}

// markup decides whether the engine should parse JSX.
func (c *Converter) markup(task types.ConversionTask, text string) bool {
	if task.Dialect == types.DialectMarkup {
		return true
	}
	return c.detection == types.MarkupByContent && strings.Contains(text, markupMarker)
}

// record hands r to the recorder. A result produced while the run is being
// cancelled still describes files on disk, so it is recorded regardless.
func (c *Converter) record(ctx context.Context, r types.ConversionResult) types.ConversionResult {
	if c.recorder == nil {
		return r
	}
	if err := c.recorder.Record(context.WithoutCancel(ctx), r); err != nil {
		c.printf(labelWarning, "journal: %v", err)
	}
	return r
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so path never holds partial content.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return err
	}
	return nil
}
