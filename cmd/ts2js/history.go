// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ts2js/internal/journal"
	"github.com/pdiddy/ts2js/internal/report"
	"github.com/pdiddy/ts2js/pkg/types"
)

func newHistoryCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List conversions recorded in the journal",
		Long: `History lists entries from the SQLite journal written by runs with
--journal, newest first. Use --orphans to find files whose converted output
was written but whose original could not be removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, v)
		},
	}

	cmd.Flags().String("journal", "", "journal file (default: the journal config key)")
	cmd.Flags().Bool("failed", false, "show only failed conversions")
	cmd.Flags().Bool("orphans", false, "show only failures that left both files on disk")
	cmd.Flags().String("run", "", "show only entries from this run ID")
	cmd.Flags().Int("limit", 50, "maximum number of entries")
	cmd.Flags().StringP("output", "o", "text", "output format: text, json, or yaml")

	return cmd
}

func runHistory(cmd *cobra.Command, v *viper.Viper) error {
	path, _ := cmd.Flags().GetString("journal")
	if path == "" {
		path = v.GetString("journal")
	}
	if path == "" {
		return fmt.Errorf("no journal configured: pass --journal or set journal in ts2js.yaml")
	}

	outFlag, _ := cmd.Flags().GetString("output")
	format, err := report.ParseFormat(outFlag)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := cmd.Context()
	var entries []journal.Entry
	if orphans, _ := cmd.Flags().GetBool("orphans"); orphans {
		entries, err = j.Orphans(ctx)
	} else {
		q := journal.Query{}
		q.RunID, _ = cmd.Flags().GetString("run")
		q.Limit, _ = cmd.Flags().GetInt("limit")
		if failed, _ := cmd.Flags().GetBool("failed"); failed {
			q.Status = types.ConversionFailed
		}
		entries, err = j.Entries(ctx, q)
	}
	if err != nil {
		return err
	}
	return report.WriteEntries(cmd.OutOrStdout(), format, entries)
}
