// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ts2js/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.EngineConfig
		wantName string
		wantErr  string
	}{
		{name: "default is typescript", cfg: types.EngineConfig{}, wantName: "typescript"},
		{name: "esbuild", cfg: types.EngineConfig{Name: types.EngineEsbuild}, wantName: "esbuild"},
		{name: "typescript", cfg: types.EngineConfig{Name: types.EngineTypeScript}, wantName: "typescript"},
		{name: "command without argv", cfg: types.EngineConfig{Name: types.EngineCommand}, wantErr: "requires a command"},
		{name: "unknown", cfg: types.EngineConfig{Name: "babel"}, wantErr: `unknown engine "babel"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := New(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, e.Name())
		})
	}
}

func TestNewTypeScriptIsChecked(t *testing.T) {
	e, err := New(types.EngineConfig{})
	require.NoError(t, err)
	ts, ok := e.(*TypeScriptEngine)
	require.True(t, ok, "got %T", e)
	assert.IsType(t, &EsbuildEngine{}, ts.check)
}

func TestDiagnosticErrorFormat(t *testing.T) {
	withPos := &DiagnosticError{Engine: "esbuild", Path: "a.ts", Line: 3, Column: 7, Message: "Expected \";\""}
	assert.Equal(t, "esbuild: a.ts:3:7: Expected \";\"", withPos.Error())

	noPos := &DiagnosticError{Engine: "esbuild", Path: "a.ts", Message: "internal error"}
	assert.Equal(t, "esbuild: a.ts: internal error", noPos.Error())
}
