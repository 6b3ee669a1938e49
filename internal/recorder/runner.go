package recorder

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const runnerWaitDelay = 2 * time.Second

// Runner executes a script action and returns its combined output.
type Runner interface {
	Run(ctx context.Context, action Action) (string, error)
}

// ExecRunner runs actions as subprocesses. The caller bounds ctx with the
// action timeout.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, action Action) (string, error) {
	if len(action.Argv) == 0 || strings.TrimSpace(action.Argv[0]) == "" {
		return "", errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, action.Argv[0], action.Argv[1:]...) //nolint:gosec
	cmd.Dir = action.Dir
	// Children such as docker-compose plugins can keep the output pipe open
	// after the parent is killed.
	cmd.WaitDelay = runnerWaitDelay
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return string(output), fmt.Errorf("%s: %w", action.Name, ctxErr)
		}
		return string(output), fmt.Errorf("%s: %w", action.Name, err)
	}
	return string(output), nil
}
