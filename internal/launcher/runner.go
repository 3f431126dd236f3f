package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// Runner starts a launch command without waiting for it.
type Runner interface {
	Start(ctx context.Context, command string) error
}

// RunnerFunc adapts an ordinary function to the Runner interface.
type RunnerFunc func(ctx context.Context, command string) error

// Start calls f.
func (f RunnerFunc) Start(ctx context.Context, command string) error {
	return f(ctx, command)
}

// ShellRunner runs commands through sh -c in their own session so they
// outlive the launcher
type ShellRunner struct {
	Logger *slog.Logger
}

// Start spawns command and reaps it in the background. ctx only bounds the
// spawn; the child is not killed when ctx ends.
func (r ShellRunner) Start(ctx context.Context, command string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cmd := exec.Command("sh", "-c", command)
	detach(cmd)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", command, err)
	}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("launched process exited", "command", command, "error", err)
		}
	}()
	return nil
}
