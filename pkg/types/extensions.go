// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ExtensionRule describes what a recognized input extension becomes.
type ExtensionRule struct {
	// Output is the replacement extension, including the leading dot.
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// Markup marks the extension as the JSX-bearing dialect.
	Markup bool `json:"markup" yaml:"markup" mapstructure:"markup"`
}

// ExtensionMap maps recognized input extensions to their output extensions.
// Lookups are case-insensitive. The zero value recognizes nothing; build one
// with NewExtensionMap or DefaultExtensionMap.
type ExtensionMap struct {
	rules map[string]ExtensionRule
}

// DefaultExtensionMap returns the standard .ts -> .js and .tsx -> .jsx mapping.
func DefaultExtensionMap() ExtensionMap {
	m, _ := NewExtensionMap(map[string]ExtensionRule{
		".ts":  {Output: ".js"},
		".tsx": {Output: ".jsx", Markup: true},
	})
	return m
}

// NewExtensionMap validates rules and returns an immutable map. Keys and
// outputs may be given with or without the leading dot.
func NewExtensionMap(rules map[string]ExtensionRule) (ExtensionMap, error) {
	out := make(map[string]ExtensionRule, len(rules))
	for in, rule := range rules {
		key := normalizeExt(in)
		if key == "" {
			return ExtensionMap{}, fmt.Errorf("extension map: empty input extension")
		}
		rule.Output = normalizeExt(rule.Output)
		if rule.Output == "" {
			return ExtensionMap{}, fmt.Errorf("extension map: %s has no output extension", key)
		}
		if rule.Output == key {
			return ExtensionMap{}, fmt.Errorf("extension map: %s maps onto itself", key)
		}
		out[key] = rule
	}
	return ExtensionMap{rules: out}, nil
}

// Lookup returns the rule for the extension of path.
func (m ExtensionMap) Lookup(path string) (ext string, rule ExtensionRule, ok bool) {
	ext = strings.ToLower(filepath.Ext(path))
	rule, ok = m.rules[ext]
	return ext, rule, ok
}

// OutputPath replaces the recognized extension of path with its mapped
// counterpart. It returns false when the extension is not recognized.
func (m ExtensionMap) OutputPath(path string) (string, bool) {
	_, rule, ok := m.Lookup(path)
	if !ok {
		return "", false
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + rule.Output, true
}

// Inputs returns the recognized input extensions in sorted order.
func (m ExtensionMap) Inputs() []string {
	keys := make([]string, 0, len(m.rules))
	for k := range m.rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// HiddenMarker prefixes directory names that are never traversed.
const HiddenMarker = "."

// IgnoreSet holds directory names excluded from traversal. Any name starting
// with HiddenMarker is excluded as well.
type IgnoreSet struct {
	names map[string]struct{}
}

// DefaultIgnoreDirs lists conventional tooling and VCS directories.
var DefaultIgnoreDirs = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	"coverage",
	".next",
	".turbo",
	".cache",
}

// NewIgnoreSet builds an immutable IgnoreSet from names.
func NewIgnoreSet(names []string) IgnoreSet {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			set[n] = struct{}{}
		}
	}
	return IgnoreSet{names: set}
}

// DefaultIgnoreSet returns an IgnoreSet of DefaultIgnoreDirs.
func DefaultIgnoreSet() IgnoreSet {
	return NewIgnoreSet(DefaultIgnoreDirs)
}

// Skip reports whether a directory called name must not be entered.
func (s IgnoreSet) Skip(name string) bool {
	if strings.HasPrefix(name, HiddenMarker) {
		return true
	}
	_, ok := s.names[name]
	return ok
}
