// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// EsbuildEngine strips types with esbuild's transform API. Syntax errors are
// reported as a DiagnosticError. The printer keeps only legal comments and
// does not preserve blank lines.
type EsbuildEngine struct{}

// NewEsbuild returns an esbuild engine.
func NewEsbuild() *EsbuildEngine {
	return &EsbuildEngine{}
}

func (e *EsbuildEngine) Name() string { return "esbuild" }

// Transform runs a single esbuild transform. A file holding only type
// declarations legitimately produces empty output.
func (e *EsbuildEngine) Transform(ctx context.Context, src Source) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	loader := api.LoaderTS
	if src.Markup {
		loader = api.LoaderTSX
	}

	result := api.Transform(src.Text, api.TransformOptions{
		Loader:        loader,
		JSX:           api.JSXPreserve,
		Target:        api.ESNext,
		Sourcefile:    src.Path,
		LegalComments: api.LegalCommentsInline,
	})

	if len(result.Errors) > 0 {
		return "", esbuildDiagnostic(src.Path, result.Errors[0])
	}
	return string(result.Code), nil
}

func esbuildDiagnostic(path string, msg api.Message) error {
	d := &DiagnosticError{
		Engine:  "esbuild",
		Path:    path,
		Message: strings.TrimSpace(msg.Text),
	}
	if msg.Location != nil {
		d.Line = msg.Location.Line
		d.Column = msg.Location.Column
	}
	return d
}
