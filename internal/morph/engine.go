package morph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single analyzer invocation.
const DefaultTimeout = 10 * time.Second

// waitDelay bounds how long a killed analyzer may hold its output pipes.
const waitDelay = 2 * time.Second

// Engine runs an external analyzer executable as "<Path> <word>" and parses
// its standard output.
type Engine struct {
	Path    string
	Timeout time.Duration
}

// NewEngine returns an Engine for the executable at path using DefaultTimeout.
func NewEngine(path string) *Engine {
	return &Engine{Path: path, Timeout: DefaultTimeout}
}

// Resolve invokes the analyzer for word. Any failure to run it is reported
// as ErrEngine; an analysis that simply finds nothing is not an error.
func (e *Engine) Resolve(ctx context.Context, word string) (Resolution, error) {
	out, err := e.Analyze(ctx, word)
	if err != nil {
		return Resolution{}, err
	}
	return ParseAnalysis(out), nil
}

// Analyze returns the raw analyzer output for word.
func (e *Engine) Analyze(ctx context.Context, word string) (string, error) {
	if strings.TrimSpace(e.Path) == "" {
		return "", fmt.Errorf("%w: analyzer path is empty", ErrEngine)
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, e.Path, word)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay
	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: analyzing %q timed out after %s", ErrEngine, word, e.Timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%w: analyzing %q: %v: %s", ErrEngine, word, err, msg)
		}
		return "", fmt.Errorf("%w: analyzing %q: %v", ErrEngine, word, err)
	}
	return stdout.String(), nil
}
