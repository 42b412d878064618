// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ts2js/internal/engine"
	"github.com/pdiddy/ts2js/internal/journal"
	"github.com/pdiddy/ts2js/pkg/types"
)

// fakeEngine implements engine.Engine for testing. It returns canned output
// or an error and remembers the last source it saw.
type fakeEngine struct {
	output string
	err    error
	calls  int
	last   engine.Source
}

func (f *fakeEngine) Name() string { return "fake" }

func (f *fakeEngine) Transform(ctx context.Context, src engine.Source) (string, error) {
	f.calls++
	f.last = src
	if f.err != nil {
		return "", f.err
	}
	if f.output != "" {
		return f.output, nil
	}
	return strings.ReplaceAll(src.Text, ": number", ""), nil
}

// fakeRecorder collects recorded results.
type fakeRecorder struct {
	results []types.ConversionResult
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, r types.ConversionResult) error {
	f.results = append(f.results, r)
	return f.err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvertFile(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		engine     *fakeEngine
		wantStatus types.ConversionStatus
		wantOut    string // output file name, "" when none must exist
		wantLog    string
		wantCalls  int
	}{
		{
			name:       "plain file converted",
			file:       "a.ts",
			engine:     &fakeEngine{},
			wantStatus: types.ConversionDone,
			wantOut:    "a.js",
			wantLog:    "converted:",
			wantCalls:  1,
		},
		{
			name:       "markup file converted",
			file:       "b.tsx",
			engine:     &fakeEngine{output: "export const el = <div />;\n"},
			wantStatus: types.ConversionDone,
			wantOut:    "b.jsx",
			wantLog:    "converted:",
			wantCalls:  1,
		},
		{
			name:       "upper case extension",
			file:       "C.TS",
			engine:     &fakeEngine{},
			wantStatus: types.ConversionDone,
			wantOut:    "C.js",
			wantLog:    "converted:",
			wantCalls:  1,
		},
		{
			name:       "unsupported extension skipped",
			file:       "c.json",
			engine:     &fakeEngine{},
			wantStatus: types.ConversionSkipped,
			wantLog:    "skipped:",
		},
		{
			name:       "transform failure",
			file:       "broken.ts",
			engine:     &fakeEngine{err: errors.New("unexpected token")},
			wantStatus: types.ConversionFailed,
			wantLog:    "failed:",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			const content = "let a: number = 1;\n"
			path := writeSource(t, dir, tt.file, content)

			var log bytes.Buffer
			c := New(tt.engine, Options{Out: &log})
			res := c.ConvertFile(context.Background(), path)

			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, path, res.InputPath)
			assert.Contains(t, log.String(), tt.wantLog)
			assert.Contains(t, log.String(), path)
			assert.Equal(t, tt.wantCalls, tt.engine.calls)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			require.Len(t, entries, 1, "exactly one file must remain")

			if tt.wantOut != "" {
				assert.True(t, res.Succeeded())
				assert.Equal(t, filepath.Join(dir, tt.wantOut), res.OutputPath)
				assert.Equal(t, tt.wantOut, entries[0].Name())
				assert.NoFileExists(t, path)
				return
			}

			// Original untouched.
			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, content, string(got))
		})
	}
}

func TestConvertFileWritesEngineOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ts", "const n: number = 42;\n")

	c := New(&fakeEngine{}, Options{})
	res := c.ConvertFile(context.Background(), path)
	require.True(t, res.Succeeded(), res.ErrorMessage())

	data, err := os.ReadFile(filepath.Join(dir, "a.js"))
	require.NoError(t, err)
	assert.Equal(t, "const n = 42;\n", string(data))
}

func TestConvertFileKeepsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}
	dir := t.TempDir()
	path := writeSource(t, dir, "bin.ts", "let a = 1;\n")
	require.NoError(t, os.Chmod(path, 0o755))

	res := New(&fakeEngine{}, Options{}).ConvertFile(context.Background(), path)
	require.True(t, res.Succeeded(), res.ErrorMessage())

	info, err := os.Stat(filepath.Join(dir, "bin.js"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestConvertFileMissingSource(t *testing.T) {
	var log bytes.Buffer
	path := filepath.Join(t.TempDir(), "gone.ts")
	eng := &fakeEngine{}
	res := New(eng, Options{Out: &log}).ConvertFile(context.Background(), path)

	assert.Equal(t, types.ConversionFailed, res.Status)
	assert.ErrorIs(t, res.Err, os.ErrNotExist)
	assert.Zero(t, eng.calls)
	assert.Contains(t, log.String(), "failed:")
	assert.Contains(t, log.String(), "gone.ts")
}

func TestConvertFileWriteFailureLeavesOriginal(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("requires non-root unix permissions")
	}
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ts", "let a = 1;\n")
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	res := New(&fakeEngine{}, Options{}).ConvertFile(context.Background(), path)
	assert.Equal(t, types.ConversionFailed, res.Status)
	assert.Contains(t, res.ErrorMessage(), "writing")
	assert.FileExists(t, path)
	assert.NoFileExists(t, filepath.Join(dir, "a.js"))
}

func TestConvertFileMarkupDetection(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		detection  types.MarkupDetection
		wantMarkup bool
	}{
		{name: "plain by extension", file: "a.ts", content: "let a = 1;", wantMarkup: false},
		{name: "markup by extension", file: "a.tsx", content: "let a = 1;", wantMarkup: true},
		{name: "marker ignored in extension mode", file: "a.ts", content: "// see b.tsx\n", detection: types.MarkupByExtension, wantMarkup: false},
		{name: "marker turns markup on in content mode", file: "a.ts", content: "// see b.tsx\n", detection: types.MarkupByContent, wantMarkup: true},
		{name: "content mode without marker", file: "a.ts", content: "let a = 1;", detection: types.MarkupByContent, wantMarkup: false},
		{name: "content mode keeps markup extension", file: "a.tsx", content: "let a = 1;", detection: types.MarkupByContent, wantMarkup: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSource(t, t.TempDir(), tt.file, tt.content)
			eng := &fakeEngine{output: "ok"}
			res := New(eng, Options{MarkupDetection: tt.detection}).ConvertFile(context.Background(), path)
			require.True(t, res.Succeeded(), res.ErrorMessage())
			assert.Equal(t, tt.wantMarkup, eng.last.Markup)
			assert.Equal(t, path, eng.last.Path)
		})
	}
}

func TestConvertFileCustomExtensions(t *testing.T) {
	ext, err := types.NewExtensionMap(map[string]types.ExtensionRule{
		"mts": {Output: "mjs"},
	})
	require.NoError(t, err)

	dir := t.TempDir()
	mts := writeSource(t, dir, "lib.mts", "export const a: number = 1;")
	ts := writeSource(t, dir, "lib.ts", "export const a: number = 1;")

	c := New(&fakeEngine{}, Options{Extensions: ext})
	assert.Equal(t, types.ConversionDone, c.ConvertFile(context.Background(), mts).Status)
	assert.Equal(t, types.ConversionSkipped, c.ConvertFile(context.Background(), ts).Status)
	assert.FileExists(t, filepath.Join(dir, "lib.mjs"))
	assert.FileExists(t, ts)
}

func TestConvertFileRecorder(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "a.ts", "let a = 1;")
	other := writeSource(t, dir, "notes.md", "# notes")

	rec := &fakeRecorder{err: errors.New("disk full")}
	var log bytes.Buffer
	c := New(&fakeEngine{}, Options{Out: &log, Recorder: rec})

	res := c.ConvertFile(context.Background(), good)
	assert.True(t, res.Succeeded(), "recorder errors must not fail the conversion")
	c.ConvertFile(context.Background(), other)

	require.Len(t, rec.results, 2)
	assert.Equal(t, types.ConversionDone, rec.results[0].Status)
	assert.Equal(t, types.ConversionSkipped, rec.results[1].Status)
	assert.Contains(t, log.String(), "journal: disk full")
}

// cancelingEngine cancels the run while a transform is in flight and then
// completes the transform anyway.
type cancelingEngine struct {
	fakeEngine
	cancel context.CancelFunc
}

func (e *cancelingEngine) Transform(ctx context.Context, src engine.Source) (string, error) {
	e.cancel()
	return e.fakeEngine.Transform(ctx, src)
}

func TestConvertFileRecordsAfterCancel(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.ts", "let a: number = 1;")

	j, err := journal.Open(filepath.Join(dir, "state", "journal.db"))
	require.NoError(t, err)
	defer j.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var log bytes.Buffer
	c := New(&cancelingEngine{cancel: cancel}, Options{Out: &log, Recorder: j})

	res := c.ConvertFile(ctx, path)
	require.Equal(t, types.ConversionDone, res.Status)
	assert.FileExists(t, filepath.Join(dir, "a.js"))
	assert.NoFileExists(t, path)
	assert.NotContains(t, log.String(), "journal:")

	entries, err := j.Entries(context.Background(), journal.Query{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.ConversionDone, entries[0].Status)
	assert.Equal(t, path, entries[0].InputPath)
}

func TestPlan(t *testing.T) {
	c := New(&fakeEngine{}, Options{})

	task, ok := c.Plan(filepath.Join("src", "view.tsx"))
	require.True(t, ok)
	assert.Equal(t, types.DialectMarkup, task.Dialect)
	assert.Equal(t, filepath.Join("src", "view.jsx"), task.OutputPath)

	task, ok = c.Plan("util.ts")
	require.True(t, ok)
	assert.Equal(t, types.DialectPlain, task.Dialect)

	_, ok = c.Plan("README")
	assert.False(t, ok)
}

func TestStatusColor(t *testing.T) {
	var log bytes.Buffer
	c := New(&fakeEngine{}, Options{Out: &log, Color: true})
	c.ReportFailure("src/private", errors.New("permission denied"))
	assert.Contains(t, log.String(), "\x1b[31mfailed:")
	assert.Contains(t, log.String(), "src/private (permission denied)")
}
