package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/tknbr/ocivet/internal/envstore"
	"github.com/tknbr/ocivet/internal/schema"
	"github.com/tknbr/ocivet/internal/ui"
)

// Outcome is the three-state result of validating one command.
type Outcome int

const (
	// Neutral: no template exists for the signature; execution
	// proceeds without deep validation.
	Neutral Outcome = iota
	// Pass: a template exists and every check was satisfied.
	Pass
	// Fail: a template exists and a check was violated; the session
	// must abort.
	Fail
)

// Result carries the outcome plus the (possibly flag-augmented) token
// sequence. Err is set only on Fail.
type Result struct {
	Outcome Outcome
	Command []string
	Err     error
}

// Validator checks resolved token sequences against stored templates.
type Validator struct {
	Store   *schema.Store
	Env     *envstore.Store
	Strict  bool
	Prompt  ui.Prompter
	Console *ui.Console
	Log     *zap.SugaredLogger
}

// Validate looks up the template for the sequence's signature and
// runs the required-argument and structural passes. Missing required
// flags may be injected from the variable store with user consent;
// the injected sequence is what the Result returns.
func (v *Validator) Validate(parts []string) Result {
	tpl, err := v.Store.Lookup(Signature(parts))
	if errors.Is(err, schema.ErrNotFound) {
		v.Log.Debugw("no template for signature", "signature", Label(Signature(parts)))
		return Result{Outcome: Neutral, Command: parts}
	}
	if err != nil {
		return Result{Outcome: Fail, Command: parts, Err: err}
	}

	v.Console.Success("Found validation template: %s", tpl.Command)
	command := append([]string(nil), parts...)
	args := ParseArgs(command)

	command, args, err = v.checkRequired(tpl, command, args)
	if err != nil {
		return Result{Outcome: Fail, Command: command, Err: err}
	}

	if err := v.checkStructural(tpl, args); err != nil {
		return Result{Outcome: Fail, Command: command, Err: err}
	}

	v.Console.Success("Command passed all structural and format validation checks.")
	return Result{Outcome: Pass, Command: command}
}

// checkRequired enforces required_args, recovering missing flags from
// the variable store when the user agrees. Injection appends the flag
// and value, then re-parses, so a recovered flag never re-triggers
// its own missing branch.
func (v *Validator) checkRequired(tpl *schema.Template, command []string, args *Args) ([]string, *Args, error) {
	for _, required := range tpl.RequiredArgs {
		if args.Has(required) {
			continue
		}
		v.Console.Warn("missing required argument: %s", required)

		if !v.Strict {
			key := SearchKey(required)
			if candidate, ok := v.pickCandidate(key); ok {
				question := fmt.Sprintf("I found %s in your environment. Add %s using it?", candidate, required)
				if v.Prompt.Confirm(question, false) {
					value, _ := v.Env.Lookup(candidate)
					command = append(command, required, value)
					args = ParseArgs(command)
					v.Console.Printf("Injected %s into the command.", required)
					continue
				}
			}
		}
		return command, args, fmt.Errorf("missing required argument: %s", required)
	}
	return command, args, nil
}

// pickCandidate finds variable names containing the search key and,
// when several match, ranks them so the closest name is offered.
func (v *Validator) pickCandidate(key string) (string, bool) {
	candidates := v.Env.Matching(key)
	if len(candidates) == 0 {
		return "", false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}
	for _, c := range candidates {
		if c == key {
			return c, true
		}
	}
	matches := fuzzy.Find(key, candidates)
	if len(matches) == 0 {
		return candidates[0], true
	}
	v.Log.Debugw("ranked env candidates", "key", key, "best", matches[0].Str, "count", len(candidates))
	return matches[0].Str, true
}

// checkStructural validates each flag that has a declared schema.
// Unresolvable $refs are skipped, never fatal: a stale reference must
// not block an otherwise good command.
func (v *Validator) checkStructural(tpl *schema.Template, args *Args) error {
	names := make([]string, 0, len(tpl.ArgSchemas))
	for name := range tpl.ArgSchemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		flag, ok := args.Lookup(name)
		if !ok {
			continue
		}
		frag := tpl.ArgSchemas[name]

		if ref, isRef := frag["$ref"].(string); isRef {
			resolved, ok := v.Store.ResolveRef(ref)
			if !ok {
				v.Log.Debugw("unresolved schema ref, skipping", "flag", name, "ref", ref)
				continue
			}
			frag = resolved
		}

		if err := v.validateFlag(flag, frag); err != nil {
			if hint, ok := frag["description"].(string); ok && hint != "" {
				v.Console.Hint("%s", hint)
			}
			return fmt.Errorf("validation error in argument '%s': %w", name, err)
		}
	}
	return nil
}

func (v *Validator) validateFlag(flag Flag, frag map[string]any) error {
	declaredType, _ := frag["type"].(string)

	if !flag.HasValue {
		if declaredType != "boolean" {
			return errors.New("expected a value, but none was provided")
		}
		// A bare boolean flag has nothing further to check.
		return nil
	}

	var instance any = flag.Value
	if declaredType == "object" || declaredType == "array" {
		data, err := schema.ValueBytes(flag.Value)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(data, &instance); err != nil {
			return fmt.Errorf("not valid JSON: %w", err)
		}
	}

	resolved, err := compile(frag)
	if err != nil {
		return fmt.Errorf("unusable schema: %w", err)
	}
	return resolved.Validate(instance)
}

// compile turns a generic schema fragment into a resolved JSON
// Schema. Fragments come from YAML, so they round-trip through JSON
// into the engine's own representation.
func compile(frag map[string]any) (*jsonschema.Resolved, error) {
	data, err := json.Marshal(frag)
	if err != nil {
		return nil, err
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s.Resolve(nil)
}

// DescribeOutcome renders an outcome for logs and messages.
func DescribeOutcome(o Outcome) string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	default:
		return "neutral"
	}
}
