package types

// EngineName identifies a transform engine backend.
type EngineName string

const (
	EngineEsbuild    EngineName = "esbuild"
	EngineTypeScript EngineName = "typescript"
	EngineCommand    EngineName = "command"

	// DefaultEngine is used when no engine is configured.
	DefaultEngine = EngineTypeScript
)

// MarkupDetection selects how the converter decides whether a file carries
// JSX markup.
type MarkupDetection string

const (
	// MarkupByExtension takes the markup mode from the extension rule only.
	MarkupByExtension MarkupDetection = "extension"

	// MarkupByContent also turns markup on when the source text contains the
	// literal substring "tsx". It misfires on comments and string literals.
	MarkupByContent MarkupDetection = "content"
)

// OutputFormat selects how the run summary is rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// EngineConfig holds settings for the transform engine.
type EngineConfig struct {
	// Name selects the backend: esbuild, typescript, or command.
	Name EngineName `json:"name" yaml:"name" mapstructure:"engine"`

	// Command is the argv of the external transformer used by the command
	// engine. The source is written to its stdin.
	Command []string `json:"command,omitempty" yaml:"command,omitempty" mapstructure:"command"`
}

// ConversionConfig holds settings for the file converter.
type ConversionConfig struct {
	// Extensions overrides the default .ts/.tsx mapping when non-empty.
	Extensions map[string]ExtensionRule `json:"extensions,omitempty" yaml:"extensions,omitempty" mapstructure:"extensions"`

	// MarkupDetection is "extension" (default) or "content".
	MarkupDetection MarkupDetection `json:"markup_detection" yaml:"markup_detection" mapstructure:"markup_detection"`
}

// WalkConfig holds settings for the directory walker.
type WalkConfig struct {
	// IgnoreDirs overrides DefaultIgnoreDirs when non-empty.
	IgnoreDirs []string `json:"ignore_dirs,omitempty" yaml:"ignore_dirs,omitempty" mapstructure:"ignore_dirs"`

	// Jobs bounds the number of concurrent conversions (default 1).
	Jobs int `json:"jobs" yaml:"jobs" mapstructure:"jobs"`
}

// Config groups everything a run needs. It is decoded from flags, the
// environment and an optional ts2js.yaml.
type Config struct {
	Engine     EngineConfig     `json:"engine" yaml:"engine" mapstructure:",squash"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:",squash"`
	Walk       WalkConfig       `json:"walk" yaml:"walk" mapstructure:",squash"`

	// Dir is the directory to convert (default ".").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// File is a single file to convert; it takes precedence over Dir.
	File string `json:"file,omitempty" yaml:"file,omitempty" mapstructure:"file"`

	DryRun  bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`

	// Output selects the summary format: text, json, or yaml.
	Output OutputFormat `json:"output" yaml:"output" mapstructure:"output"`

	// Journal is the SQLite journal path; empty disables journaling.
	Journal string `json:"journal,omitempty" yaml:"journal,omitempty" mapstructure:"journal"`
}

// ExtensionMap builds the configured extension map, falling back to the
// default mapping.
func (c ConversionConfig) ExtensionMap() (ExtensionMap, error) {
	if len(c.Extensions) == 0 {
		return DefaultExtensionMap(), nil
	}
	return NewExtensionMap(c.Extensions)
}

// IgnoreSet builds the configured ignore set, falling back to the defaults.
func (c WalkConfig) IgnoreSet() IgnoreSet {
	if len(c.IgnoreDirs) == 0 {
		return DefaultIgnoreSet()
	}
	return NewIgnoreSet(c.IgnoreDirs)
}
