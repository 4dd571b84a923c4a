// Package learn derives a new validation template from an observed
// successful invocation. Learning is strict by construction: the
// command is re-resolved without fuzzy recovery and must exit zero
// before any question is asked.
package learn

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tknbr/ocivet/internal/envstore"
	"github.com/tknbr/ocivet/internal/redact"
	"github.com/tknbr/ocivet/internal/resolve"
	"github.com/tknbr/ocivet/internal/runner"
	"github.com/tknbr/ocivet/internal/schema"
	"github.com/tknbr/ocivet/internal/ui"
	"github.com/tknbr/ocivet/internal/validate"
)

// ErrCommandFailed reports that the command to learn from did not
// succeed. Learning from failures is a hard precondition violation.
var ErrCommandFailed = errors.New("command failed; can only learn from successful commands")

// CommandRunner abstracts the executor for tests.
type CommandRunner interface {
	Run(ctx context.Context, parts []string) runner.Result
}

// Learner builds templates interactively from successful commands.
type Learner struct {
	Env      *envstore.Store
	Store    *schema.Store
	Runner   CommandRunner
	Prompt   ui.Prompter
	Console  *ui.Console
	Redactor *redact.Redactor
	Log      *zap.SugaredLogger
}

// Learn verifies the command succeeds, then walks its flags asking
// which are required and which values deserve a schema. A template
// with no rules at all is discarded rather than persisted.
func (l *Learner) Learn(ctx context.Context, raw []string) error {
	l.Console.Printf("Learning mode: the command will be run to verify it succeeds.")

	resolver := &resolve.Resolver{Env: l.Env, Strict: true, Prompt: l.Prompt, Console: l.Console, Log: l.Log}
	resolved, err := resolver.Resolve(raw)
	if err != nil {
		return fmt.Errorf("variable resolution failed; ensure all variables are set: %w", err)
	}

	result := l.Runner.Run(ctx, resolved)
	if result.ExitCode != 0 {
		message := strings.TrimSpace(strings.TrimSpace(result.Stderr) + "\n" + strings.TrimSpace(result.Stdout))
		l.Console.Error("%s", l.redact(message))
		return ErrCommandFailed
	}
	l.Console.Success("Command execution was successful. Building the template.")

	signature := validate.Signature(resolved)
	if len(signature) == 0 {
		return errors.New("cannot derive a command signature from an empty command")
	}
	tpl := &schema.Template{
		Command:    validate.Label(signature),
		ArgSchemas: map[string]map[string]any{},
	}

	for _, flag := range validate.ParseArgs(resolved).Flags() {
		l.Console.Printf("Processing flag: %s", flag.Name)
		if l.Prompt.Confirm("Should "+flag.Name+" be a required argument?", false) {
			tpl.RequiredArgs = append(tpl.RequiredArgs, flag.Name)
		}
		if !flag.HasValue {
			continue
		}
		l.learnValue(tpl, flag)
	}

	if tpl.Empty() {
		l.Console.Warn("no validation rules were defined; template creation aborted")
		return nil
	}

	path, err := l.Store.Save(signature, tpl)
	if err != nil {
		return err
	}
	l.Console.Success("New validation template saved to: %s", path)
	return nil
}

// learnValue decides the schema for one valued flag: a $ref when the
// value looks like an OCID with a matching common-schema entry, an
// inferred structural schema when it parses as JSON, nothing
// otherwise.
func (l *Learner) learnValue(tpl *schema.Template, flag validate.Flag) {
	if ref, ok := l.ocidRef(flag.Value); ok {
		question := "Value looks like an OCID. Use common schema '$ref: " + ref + "'?"
		if l.Prompt.Confirm(question, false) {
			tpl.ArgSchemas[flag.Name] = map[string]any{"$ref": ref}
			return
		}
	}

	instance, err := schema.ParseInstance(flag.Value)
	if err != nil {
		// Not JSON and not a readable file: a plain argument, no
		// schema to record.
		l.Log.Debugw("no schema inferred", "flag", flag.Name, "reason", err)
		return
	}

	source := "inline JSON"
	if strings.HasPrefix(flag.Value, schema.FileValuePrefix) {
		source = "file"
	}
	if l.Prompt.Confirm("Value is valid "+source+". Infer a validation schema from its structure?", false) {
		inferred := schema.Infer(instance)
		tpl.ArgSchemas[flag.Name] = inferred
		l.Console.Printf("Added inferred %v schema for %s.", inferred["type"], flag.Name)
	}
}

// ocidRef maps an OCID value to its common-schema entry, e.g.
// ocid1.compartment.... → common_oci_args.compartment_id, when that
// entry actually resolves.
func (l *Learner) ocidRef(value string) (string, bool) {
	if !strings.HasPrefix(value, "ocid1.") {
		return "", false
	}
	segments := strings.Split(value, ".")
	if len(segments) < 2 || segments[1] == "" {
		return "", false
	}
	ref := "common_oci_args." + segments[1] + "_id"
	if _, ok := l.Store.ResolveRef(ref); !ok {
		return "", false
	}
	return ref, true
}

func (l *Learner) redact(text string) string {
	if l.Redactor == nil {
		return text
	}
	return l.Redactor.Redact(text)
}
