// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ts2js/internal/convert"
	"github.com/pdiddy/ts2js/internal/engine"
	"github.com/pdiddy/ts2js/internal/journal"
	"github.com/pdiddy/ts2js/internal/report"
	"github.com/pdiddy/ts2js/internal/walk"
	"github.com/pdiddy/ts2js/pkg/types"
)

// runConvert drives a single-file or directory conversion. Per-file
// failures are reported in the output; only setup errors and an invalid
// single-file target are returned.
func runConvert(cmd *cobra.Command, cfg types.Config) error {
	out := cmd.OutOrStdout()

	dir := cfg.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		dir = wd
	}

	if cfg.Verbose {
		printParams(cmd.ErrOrStderr(), cfg, dir)
	}

	if cfg.DryRun {
		if cfg.File != "" {
			fmt.Fprintf(out, "dry run: would convert file %s\n", cfg.File)
		} else {
			fmt.Fprintf(out, "dry run: would convert directory %s\n", dir)
		}
		return nil
	}

	eng, err := engine.New(cfg.Engine)
	if err != nil {
		return err
	}
	extensions, err := cfg.Conversion.ExtensionMap()
	if err != nil {
		return err
	}

	// Keep stdout machine-readable when a structured summary was requested.
	status := out
	if cfg.Output != types.OutputText {
		status = cmd.ErrOrStderr()
	}

	opts := convert.Options{
		Extensions:      extensions,
		MarkupDetection: cfg.Conversion.MarkupDetection,
		Out:             status,
		Color:           shouldColorize(status),
	}
	summary := report.Summary{Engine: eng.Name()}
	if cfg.Journal != "" {
		j, err := journal.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer j.Close()
		opts.Recorder = j
		summary.RunID = j.RunID()
	}
	conv := convert.New(eng, opts)

	ctx := cmd.Context()

	if cfg.File != "" {
		info, err := os.Stat(cfg.File)
		if err != nil {
			return fmt.Errorf("reading %s: %w", cfg.File, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory; use --dir", cfg.File)
		}
		res := conv.ConvertFile(ctx, cfg.File)
		summary.Mode = report.ModeFile
		summary.Target = cfg.File
		summary.Stats.Add(res)
		summary.Result = &res
		return report.WriteSummary(out, cfg.Output, summary)
	}

	w := walk.New(conv, walk.Options{
		Ignore: cfg.Walk.IgnoreSet(),
		Jobs:   cfg.Walk.Jobs,
	})
	summary.Mode = report.ModeDirectory
	summary.Target = dir
	summary.Stats = w.Walk(ctx, dir)
	return report.WriteSummary(out, cfg.Output, summary)
}

func printParams(w io.Writer, cfg types.Config, dir string) {
	engineName := cfg.Engine.Name
	if engineName == "" {
		engineName = types.DefaultEngine
	}
	fmt.Fprintf(w, "directory: %s\n", dir)
	fmt.Fprintf(w, "file:      %s\n", cfg.File)
	fmt.Fprintf(w, "dry-run:   %t\n", cfg.DryRun)
	fmt.Fprintf(w, "engine:    %s\n", engineName)
	fmt.Fprintf(w, "jobs:      %d\n", cfg.Walk.Jobs)
	fmt.Fprintf(w, "markup:    %s\n", cfg.Conversion.MarkupDetection)
	if cfg.Journal != "" {
		fmt.Fprintf(w, "journal:   %s\n", cfg.Journal)
	}
}
