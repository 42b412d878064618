// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine wraps the parse, type-erase and print pipeline that turns
// TypeScript into JavaScript. The converter treats an Engine as opaque: text
// in, text out, or an error.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/ts2js/pkg/types"
)

// ErrNoOutput is returned when an engine finishes without producing code.
var ErrNoOutput = errors.New("engine produced no output")

// Source is one file handed to an engine.
type Source struct {
	// Path is used only for diagnostics.
	Path string

	// Text is the full TypeScript source.
	Text string

	// Markup asks the engine to parse JSX.
	Markup bool
}

// Engine transforms TypeScript source into JavaScript with all type-only
// syntax removed. JSX is preserved as written.
type Engine interface {
	// Name returns the backend name, e.g. "esbuild".
	Name() string

	// Transform returns the JavaScript for src, or an error when src cannot
	// be parsed or the engine fails.
	Transform(ctx context.Context, src Source) (string, error)
}

// DiagnosticError reports the first problem an engine found in a source file.
type DiagnosticError struct {
	Engine  string
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *DiagnosticError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s:%d:%d: %s", e.Engine, e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Engine, e.Path, e.Message)
}

// New constructs the engine selected by cfg. An empty name selects
// types.DefaultEngine.
func New(cfg types.EngineConfig) (Engine, error) {
	switch cfg.Name {
	case types.EngineEsbuild:
		return NewEsbuild(), nil
	case "", types.EngineTypeScript:
		return NewTypeScript(), nil
	case types.EngineCommand:
		c, err := NewCommand(cfg.Command)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want %s, %s, or %s)",
			cfg.Name, types.EngineEsbuild, types.EngineTypeScript, types.EngineCommand)
	}
}
