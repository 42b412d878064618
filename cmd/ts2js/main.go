// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ts2js CLI. ts2js converts
// TypeScript sources (.ts, .tsx) to JavaScript (.js, .jsx) in place.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ts2js/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// flagKeys maps root command flags to their config keys.
var flagKeys = map[string]string{
	"dir":              "dir",
	"file":             "file",
	"dry-run":          "dry_run",
	"verbose":          "verbose",
	"engine":           "engine",
	"jobs":             "jobs",
	"output":           "output",
	"journal":          "journal",
	"markup-detection": "markup_detection",
}

// newRootCommand builds the ts2js command tree around its own viper
// instance so each invocation starts from a clean configuration.
func newRootCommand() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "ts2js",
		Short: "Convert TypeScript sources to JavaScript in place",
		Long: `ts2js strips type-only syntax from TypeScript files and rewrites them as
JavaScript: .ts becomes .js and .tsx becomes .jsx. It converts a single file
(--file) or every file under a directory (--dir, default the current
directory), skipping node_modules, build output, and hidden directories.

Each converted file is written before its original is removed. Files that
fail to parse are left untouched and reported; the run still exits 0.`,
		Version:      version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return runConvert(cmd, cfg)
		},
	}
	rootCmd.SetVersionTemplate("ts2js {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./ts2js.yaml or ~/.config/ts2js/ts2js.yaml)")

	f := rootCmd.Flags()
	f.StringP("dir", "d", "", "directory to convert (default: current working directory)")
	f.StringP("file", "f", "", "single file to convert; overrides --dir")
	f.BoolP("dry-run", "r", false, "print the target without converting anything")
	f.BoolP("verbose", "v", false, "print resolved parameters before running")
	f.BoolP("version", "V", false, "print the version and exit")
	f.StringP("engine", "e", string(types.DefaultEngine), "transform engine: typescript, esbuild, or command")
	f.IntP("jobs", "j", 1, "number of files converted concurrently in directory mode")
	f.StringP("output", "o", "text", "summary format: text, json, or yaml")
	f.String("journal", "", "SQLite journal recording every conversion (disabled when empty)")
	f.String("markup-detection", "extension", "how JSX mode is chosen: extension or content")

	for flag, key := range flagKeys {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newHistoryCommand(v))

	return rootCmd
}

func initConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("ts2js")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ts2js"))
		}
	}

	v.SetEnvPrefix("TS2JS")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", v.ConfigFileUsed())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
