// Package session drives one run of the validation pipeline:
// resolve → preflight → validate → execute, then at most one
// confirmation-gated recovery re-run on failure or empty result.
package session

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tknbr/ocivet/internal/analyze"
	"github.com/tknbr/ocivet/internal/envstore"
	"github.com/tknbr/ocivet/internal/preflight"
	"github.com/tknbr/ocivet/internal/redact"
	"github.com/tknbr/ocivet/internal/resolve"
	"github.com/tknbr/ocivet/internal/runner"
	"github.com/tknbr/ocivet/internal/schema"
	"github.com/tknbr/ocivet/internal/ui"
	"github.com/tknbr/ocivet/internal/validate"
)

// CommandRunner abstracts the executor so tests can script outcomes.
type CommandRunner interface {
	Run(ctx context.Context, parts []string) runner.Result
}

// Session holds the collaborators for one validated run. All shared
// state (variable store, common schemas) is read-only for its
// duration.
type Session struct {
	Env      *envstore.Store
	Store    *schema.Store
	Runner   CommandRunner
	Prompt   ui.Prompter
	Console  *ui.Console
	Redactor *redact.Redactor
	Strict   bool
	Log      *zap.SugaredLogger
}

// Run executes the pipeline for a raw token sequence and returns the
// process exit code: the final executor exit on any execution, 1 on
// an abort before execution. Every abort path prints a visible
// session end.
func (s *Session) Run(ctx context.Context, raw []string) int {
	s.Console.Rule("validator session started")

	s.Console.Printf("[1/4] Resolving environment variables...")
	resolver := &resolve.Resolver{Env: s.Env, Strict: s.Strict, Prompt: s.Prompt, Console: s.Console, Log: s.Log}
	resolved, err := resolver.Resolve(raw)
	if err != nil {
		return s.abort("variable resolution failed")
	}
	s.Console.Success("Variables resolved.")

	s.Console.Printf("[2/4] Running pre-flight file path check...")
	if err := preflight.Check(resolved); err != nil {
		s.Console.Error("pre-flight check: %v", err)
		return s.abort("file path check failed")
	}
	s.Console.Success("File paths are valid.")

	s.Console.Printf("[3/4] Validating command against template...")
	validator := &validate.Validator{Store: s.Store, Env: s.Env, Strict: s.Strict, Prompt: s.Prompt, Console: s.Console, Log: s.Log}
	res := validator.Validate(resolved)
	if res.Outcome == validate.Fail {
		s.Console.Error("%v", res.Err)
		return s.abort("validation failed")
	}
	if res.Outcome == validate.Neutral {
		s.Console.Printf("No template found for this command; skipping deep validation.")
	}
	command := res.Command

	s.Console.Printf("[4/4] Executing command...")
	s.Console.Printf("  %s", s.redact(strings.Join(command, " ")))
	result := s.Runner.Run(ctx, command)
	s.show(result)

	if result.ExitCode != 0 {
		result = s.recoverFailure(ctx, command, result)
	} else if analyze.IsEmptyResult(result.Stdout) {
		result = s.recoverEmpty(ctx, command, result)
	}

	s.Console.Rule("validator session ended")
	return result.ExitCode
}

// recoverFailure offers exactly one corrected re-run when stderr
// names a missing flag that a known variable can fill. The re-run is
// a fresh resolve→execute cycle.
func (s *Session) recoverFailure(ctx context.Context, command []string, result runner.Result) runner.Result {
	suggestion, ok := analyze.SuggestFix(result.Stderr, s.Env)
	if !ok {
		return result
	}
	question := "I can add " + suggestion.Flag + " from $" + suggestion.Variable + " and re-run. Proceed?"
	if !s.Prompt.Confirm(question, false) {
		return result
	}

	value, _ := s.Env.Lookup(suggestion.Variable)
	corrected := append(append([]string(nil), command...), suggestion.Flag, value)
	return s.rerun(ctx, corrected)
}

// recoverEmpty offers exactly one broadened re-run after a successful
// but empty listing.
func (s *Session) recoverEmpty(ctx context.Context, command []string, result runner.Result) runner.Result {
	broadened, dropped, ok := analyze.SuggestBroadening(command)
	if !ok {
		return result
	}
	question := "The command returned no results. Re-run without " + dropped + "?"
	if !s.Prompt.Confirm(question, false) {
		return result
	}
	return s.rerun(ctx, broadened)
}

func (s *Session) rerun(ctx context.Context, command []string) runner.Result {
	resolver := &resolve.Resolver{Env: s.Env, Strict: s.Strict, Prompt: s.Prompt, Console: s.Console, Log: s.Log}
	resolved, err := resolver.Resolve(command)
	if err != nil {
		s.Console.Error("variable resolution failed on re-run")
		return runner.Result{ExitCode: 1, Stderr: "variable resolution failed"}
	}
	s.Console.Printf("Re-running: %s", s.redact(strings.Join(resolved, " ")))
	result := s.Runner.Run(ctx, resolved)
	s.show(result)
	return result
}

// show prints the captured output with redaction applied at this
// boundary only; the executed command always carried real values.
func (s *Session) show(result runner.Result) {
	if out := strings.TrimRight(result.Stdout, "\n"); out != "" {
		s.Console.Printf("%s", s.redact(out))
	}
	if errText := strings.TrimRight(result.Stderr, "\n"); errText != "" {
		if result.ExitCode != 0 {
			s.Console.Error("%s", s.redact(errText))
		} else {
			s.Console.Printf("%s", s.redact(errText))
		}
	}
}

func (s *Session) redact(text string) string {
	if s.Redactor == nil {
		return text
	}
	return s.Redactor.Redact(text)
}

func (s *Session) abort(reason string) int {
	s.Log.Debugw("session aborted", "reason", reason)
	s.Console.Rule("session aborted")
	return 1
}
