package pdf

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// CLI operation timeout constants
const (
	DefaultCLITimeout = 120 * time.Second
	ProbeTimeout      = 5 * time.Second
)

// commandRunner abstracts external binaries so tests can fake them.
type commandRunner interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error)
}

// execRunner is the production runner backed by os/exec.
type execRunner struct{}

func (execRunner) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execRunner) Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	return execCommandWithTimeout(ctx, timeout, name, args...)
}

// execCommandWithTimeout executes a command with a timeout
func execCommandWithTimeout(parent context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("command timed out after %v", timeout)
	}

	if err != nil {
		return output, fmt.Errorf("command failed: %w", err)
	}

	return output, nil
}
