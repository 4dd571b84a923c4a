// Package resolve rewrites $NAME references in a token sequence using
// the ambient variable store. On a miss it either fails immediately
// (strict mode) or offers the closest-sounding known variable.
package resolve

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tknbr/ocivet/internal/envstore"
	"github.com/tknbr/ocivet/internal/ui"
)

// ErrUnresolved reports that a $NAME reference could not be resolved.
// It always aborts the session: there are no partial resolutions.
var ErrUnresolved = errors.New("variable resolution failed")

// Resolver substitutes variable references in token sequences.
type Resolver struct {
	Env     *envstore.Store
	Strict  bool
	Prompt  ui.Prompter
	Console *ui.Console
	Log     *zap.SugaredLogger
}

// Resolve returns a fully resolved copy of parts, preserving order
// and length 1:1, or ErrUnresolved. Tokens without a $ prefix pass
// through untouched.
func (r *Resolver) Resolve(parts []string) ([]string, error) {
	resolved := make([]string, 0, len(parts))

	for _, part := range parts {
		clean := strings.Trim(part, `'"`)
		if !strings.HasPrefix(clean, "$") {
			resolved = append(resolved, part)
			continue
		}

		name := strings.Trim(clean, "${}")
		if value, ok := r.Env.Lookup(name); ok {
			resolved = append(resolved, expandValue(value))
			continue
		}

		if r.Strict {
			r.Console.Error("environment variable '%s' not found in CI mode", name)
			return nil, ErrUnresolved
		}

		r.Console.Warn("environment variable '%s' not found", name)
		closest, score := bestMatch(name, r.Env.Names())
		r.Log.Debugw("fuzzy variable match", "missing", name, "closest", closest, "score", score)
		if score > matchThreshold && r.Prompt.Confirm("Did you mean '"+closest+"'?", false) {
			value, _ := r.Env.Lookup(closest)
			resolved = append(resolved, expandValue(value))
			r.Console.Printf("Using value for %s.", closest)
			continue
		}

		// Declined or nothing close enough: the whole resolution
		// fails rather than passing a hole to the wrapped tool.
		return nil, ErrUnresolved
	}
	return resolved, nil
}

// expandValue passes JSON literals through verbatim; anything else is
// treated as a path and gets a leading ~ expanded.
func expandValue(value string) string {
	if json.Valid([]byte(value)) {
		return value
	}
	return ExpandHome(value)
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
