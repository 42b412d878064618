// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "fmt"

type label struct {
	text  string
	color string
}

const ansiReset = "\x1b[0m"

var (
	labelConverted = label{text: "converted:", color: "\x1b[32m"}
	labelFailed    = label{text: "failed:   ", color: "\x1b[31m"}
	labelSkipped   = label{text: "skipped:  ", color: "\x1b[33m"}
	labelWarning   = label{text: "warning:  ", color: "\x1b[33m"}
)

// printf writes one status line. Lines from concurrent conversions are
// serialized.
func (c *Converter) printf(l label, format string, args ...any) {
	prefix := l.text
	if c.color {
		prefix = l.color + l.text + ansiReset
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, prefix+" "+format+"\n", args...)
}

// ReportFailure prints a failure line for a path the converter never saw,
// such as a directory that could not be read.
func (c *Converter) ReportFailure(path string, err error) {
	c.printf(labelFailed, "%s (%v)", path, err)
}
