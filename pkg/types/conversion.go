// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of converting a single file.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionFailed  ConversionStatus = "failed"
	ConversionSkipped ConversionStatus = "skipped"
)

// Dialect identifies which variant of the typed source language a file uses.
type Dialect string

const (
	// DialectPlain is TypeScript without embedded markup (.ts).
	DialectPlain Dialect = "plain"

	// DialectMarkup is TypeScript with embedded JSX markup (.tsx).
	DialectMarkup Dialect = "markup"
)

// ConversionTask is one discovered file awaiting conversion.
type ConversionTask struct {
	// InputPath is the path of the source file.
	InputPath string `json:"input_path" yaml:"input_path"`

	// Dialect is the dialect detected from the file extension.
	Dialect Dialect `json:"dialect" yaml:"dialect"`

	// OutputPath is where the converted file will be written.
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// ConversionResult is the outcome of one conversion attempt. It is never
// mutated after the converter returns it.
type ConversionResult struct {
	Status     ConversionStatus `json:"status" yaml:"status"`
	InputPath  string           `json:"input_path" yaml:"input_path"`
	OutputPath string           `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Err        error            `json:"-" yaml:"-"`
}

// Succeeded reports whether the file was converted.
func (r ConversionResult) Succeeded() bool {
	return r.Status == ConversionDone
}

// ErrorMessage returns the failure reason, or "" when there is none.
func (r ConversionResult) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// ConversionStats accumulates results over one run. Counters only grow.
// Skipped files are tracked for reporting but are neither successes nor
// failures.
type ConversionStats struct {
	Succeeded int `json:"succeeded" yaml:"succeeded"`
	Failed    int `json:"failed" yaml:"failed"`
	Skipped   int `json:"skipped" yaml:"skipped"`
}

// Add records a single result.
func (s *ConversionStats) Add(r ConversionResult) {
	switch r.Status {
	case ConversionDone:
		s.Succeeded++
	case ConversionFailed:
		s.Failed++
	case ConversionSkipped:
		s.Skipped++
	}
}

// Total returns the number of nodes that counted as success or failure.
func (s ConversionStats) Total() int {
	return s.Succeeded + s.Failed
}
