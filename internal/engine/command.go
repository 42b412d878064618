// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Environment variables passed to the external transformer.
const (
	envFile   = "TS2JS_FILE"
	envMarkup = "TS2JS_MARKUP"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunPiped(ctx context.Context, name string, args, env []string, stdin io.Reader, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunPiped(ctx context.Context, name string, args, env []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec = &osExecutor{}

// CommandEngine pipes each source through an external transformer, for
// example a node script wrapping babel. The source goes to stdin and the
// JavaScript is read from stdout.
type CommandEngine struct {
	bin  string
	args []string
	exec executor
}

// NewCommand returns an engine that runs argv. The binary must be on PATH.
func NewCommand(argv []string) (*CommandEngine, error) {
	return newCommand(argv, defaultExec)
}

func newCommand(argv []string, exec executor) (*CommandEngine, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, fmt.Errorf("command engine requires a command (set \"command\" in the config file)")
	}
	if _, err := exec.LookPath(argv[0]); err != nil {
		return nil, fmt.Errorf("command engine: %s not found: %w", argv[0], err)
	}
	return &CommandEngine{
		bin:  argv[0],
		args: append([]string(nil), argv[1:]...),
		exec: exec,
	}, nil
}

func (c *CommandEngine) Name() string { return "command" }

// Transform runs the command once for src. A non-zero exit or empty output
// is a failure; the command's stderr is included in the error.
func (c *CommandEngine) Transform(ctx context.Context, src Source) (string, error) {
	env := []string{envFile + "=" + src.Path}
	if src.Markup {
		env = append(env, envMarkup+"=1")
	}

	var out, errOut bytes.Buffer
	if err := c.exec.RunPiped(ctx, c.bin, c.args, env, strings.NewReader(src.Text), &out, &errOut); err != nil {
		msg := strings.TrimSpace(errOut.String())
		if msg == "" {
			return "", fmt.Errorf("running %s on %s: %w", c.bin, src.Path, err)
		}
		return "", fmt.Errorf("running %s on %s: %w: %s", c.bin, src.Path, err, msg)
	}

	if out.Len() == 0 {
		return "", fmt.Errorf("%s on %s: %w", c.bin, src.Path, ErrNoOutput)
	}
	return out.String(), nil
}
