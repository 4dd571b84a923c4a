// Package runner executes the final token sequence as a subprocess
// and captures its outcome. It interprets nothing: exit code, stdout,
// and stderr are returned as-is for the caller to judge.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"go.uber.org/zap"
)

// Result is the captured outcome of one subprocess run.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Exec runs commands with captured output. The child inherits the
// parent environment with pager behavior forced off so captured
// output is complete and deterministic.
type Exec struct {
	Log *zap.SugaredLogger
}

// Run spawns parts as a child process and blocks until it exits.
// Failure to launch at all (executable not found, empty command) maps
// to a synthetic exit code 1 with the error text in Stderr; this
// boundary never returns an error.
func (e *Exec) Run(ctx context.Context, parts []string) Result {
	if len(parts) == 0 {
		return Result{ExitCode: 1, Stderr: "empty command"}
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Env = append(os.Environ(), "OCI_CLI_PAGER=cat", "PAGER=cat")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.Log.Debugw("executing command", "argv", parts)
	err := cmd.Run()
	result := Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
			if result.Stderr == "" {
				result.Stderr = err.Error()
			}
		}
	}

	e.Log.Debugw("command finished", "exit", result.ExitCode,
		"stdout_bytes", len(result.Stdout), "stderr_bytes", len(result.Stderr))
	return result
}
