//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds ts2js and converts the directory named by DIR (default:
// the current directory). Set DRY_RUN=1 to only print the target.
func Convert() error {
	mg.Deps(Build)

	dir := os.Getenv("DIR")
	if dir == "" {
		dir = "."
	}
	args := []string{"--dir", dir}
	if os.Getenv("DRY_RUN") != "" {
		args = append(args, "--dry-run")
	}
	return sh.RunV("./bin/ts2js", args...)
}
