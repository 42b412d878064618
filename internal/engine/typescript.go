// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"strings"

	typescript "github.com/clarkmcc/go-typescript"
)

// compilerOptions returns transpile options that keep ES modules and
// comments untouched. The jsx option makes the compiler parse the file as
// TSX, so it is set only for markup sources; otherwise a plain file's
// angle-bracket casts would be read as elements.
func compilerOptions(markup bool) map[string]interface{} {
	opts := map[string]interface{}{
		"target":          "esnext",
		"module":          "esnext",
		"removeComments":  false,
		"isolatedModules": true,
	}
	if markup {
		opts["jsx"] = "preserve"
	}
	return opts
}

// TypeScriptEngine runs the TypeScript compiler's transpiler inside an
// embedded JavaScript runtime. Its printer keeps comments and most of the
// original layout, which makes it the default.
//
// In transpile-only mode the compiler does not reject syntax errors; it
// emits its best effort. The source is therefore parsed by check first and
// any diagnostic it reports fails the transform.
type TypeScriptEngine struct {
	check     Engine
	transpile func(ctx context.Context, src string, opts map[string]interface{}) (string, error)
}

// NewTypeScript returns an engine backed by github.com/clarkmcc/go-typescript
// that validates every source with esbuild before printing it.
func NewTypeScript() *TypeScriptEngine {
	return &TypeScriptEngine{
		check: NewEsbuild(),
		transpile: func(ctx context.Context, src string, opts map[string]interface{}) (string, error) {
			return typescript.TranspileCtx(ctx, strings.NewReader(src),
				typescript.WithCompileOptions(opts))
		},
	}
}

func (e *TypeScriptEngine) Name() string { return "typescript" }

func (e *TypeScriptEngine) Transform(ctx context.Context, src Source) (string, error) {
	if e.check != nil {
		if _, err := e.check.Transform(ctx, src); err != nil {
			return "", err
		}
	}
	out, err := e.transpile(ctx, src.Text, compilerOptions(src.Markup))
	if err != nil {
		return "", fmt.Errorf("typescript: transpiling %s: %w", src.Path, err)
	}
	return out, nil
}
