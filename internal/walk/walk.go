// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package walk converts every file under a directory tree and accumulates
// the per-file outcomes into ConversionStats.
package walk

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/ts2js/pkg/types"
)

// FileConverter converts one file and reports failures the walker finds on
// its own.
type FileConverter interface {
	ConvertFile(ctx context.Context, path string) types.ConversionResult
	ReportFailure(path string, err error)
}

// Options configures a Walker.
type Options struct {
	// Ignore lists directories that are never entered. The zero value still
	// skips hidden directories.
	Ignore types.IgnoreSet

	// Jobs bounds concurrent conversions. Values below 2 convert one file
	// at a time in traversal order.
	Jobs int
}

// Walker traverses a directory tree depth-first with an explicit stack.
type Walker struct {
	conv   FileConverter
	ignore types.IgnoreSet
	jobs   int
}

// New returns a Walker that hands every file to conv.
func New(conv FileConverter, opts Options) *Walker {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	return &Walker{conv: conv, ignore: opts.Ignore, jobs: jobs}
}

// Walk converts every file under root and returns the accumulated stats.
// A directory that cannot be read counts as one failure and the walk moves
// on to its siblings. The root itself is never matched against the ignore
// set. Cancelling ctx stops the walk before the next file or directory;
// conversions already started run to completion.
//
// The files of a directory are converted before any of its subdirectories
// is entered, so the visit order is not a plain pre-order. Callers must not
// rely on any particular order.
func (w *Walker) Walk(ctx context.Context, root string) types.ConversionStats {
	var (
		mu    sync.Mutex
		stats types.ConversionStats
		g     errgroup.Group
	)
	g.SetLimit(w.jobs)

	convert := func(path string) {
		res := w.conv.ConvertFile(ctx, path)
		mu.Lock()
		stats.Add(res)
		mu.Unlock()
	}

	stack := []string{root}
	for len(stack) > 0 && ctx.Err() == nil {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			w.conv.ReportFailure(dir, err)
			mu.Lock()
			stats.Failed++
			mu.Unlock()
			continue
		}

		var subdirs []string
		for _, entry := range entries {
			if ctx.Err() != nil {
				break
			}
			path := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if !w.ignore.Skip(entry.Name()) {
					subdirs = append(subdirs, path)
				}
				continue
			}
			if w.jobs == 1 {
				convert(path)
				continue
			}
			g.Go(func() error {
				convert(path)
				return nil
			})
		}

		// Push in reverse so subdirectories are visited in listing order.
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	_ = g.Wait()
	return stats
}
