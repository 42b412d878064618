package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/ts2js/internal/report"
	"github.com/pdiddy/ts2js/pkg/types"
)

// loadConfig decodes flags, TS2JS_* environment variables and the config
// file into a Config, flags taking precedence.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}

	format, err := report.ParseFormat(string(cfg.Output))
	if err != nil {
		return cfg, err
	}
	cfg.Output = format

	switch cfg.Conversion.MarkupDetection {
	case "":
		cfg.Conversion.MarkupDetection = types.MarkupByExtension
	case types.MarkupByExtension, types.MarkupByContent:
	default:
		return cfg, fmt.Errorf("unsupported markup detection %q (want %s or %s)",
			cfg.Conversion.MarkupDetection, types.MarkupByExtension, types.MarkupByContent)
	}

	if cfg.Walk.Jobs < 1 {
		cfg.Walk.Jobs = 1
	}
	return cfg, nil
}
