// Package validate parses token sequences into flag/value pairs and
// checks them against stored templates, with required-flag recovery
// from the variable store and structural checks delegated to a JSON
// Schema engine.
package validate

import (
	"strings"
)

// Flag is one parsed --flag, with its value when the following token
// was not itself a flag.
type Flag struct {
	Name     string
	Value    string
	HasValue bool
}

// Args is the parsed flag map of a token sequence. Lookup is by name
// with last-occurrence-wins values; iteration order is the first
// occurrence of each flag, so interactive walks follow what the user
// typed.
type Args struct {
	ordered []string
	byName  map[string]Flag
}

// ParseArgs scans a token sequence for --flags. A flag followed by a
// non-flag token is valued; otherwise it is boolean.
func ParseArgs(parts []string) *Args {
	a := &Args{byName: make(map[string]Flag)}
	i := 0
	for i < len(parts) {
		part := parts[i]
		if !strings.HasPrefix(part, "--") {
			i++
			continue
		}
		f := Flag{Name: part}
		if i+1 < len(parts) && !strings.HasPrefix(parts[i+1], "--") {
			f.Value = parts[i+1]
			f.HasValue = true
			i += 2
		} else {
			i++
		}
		if _, seen := a.byName[f.Name]; !seen {
			a.ordered = append(a.ordered, f.Name)
		}
		a.byName[f.Name] = f
	}
	return a
}

// Lookup returns the parsed flag by name.
func (a *Args) Lookup(name string) (Flag, bool) {
	f, ok := a.byName[name]
	return f, ok
}

// Has reports whether the flag occurred at all.
func (a *Args) Has(name string) bool {
	_, ok := a.byName[name]
	return ok
}

// Flags returns the parsed flags in first-occurrence order.
func (a *Args) Flags() []Flag {
	out := make([]Flag, 0, len(a.ordered))
	for _, name := range a.ordered {
		out = append(out, a.byName[name])
	}
	return out
}

// maxSignatureSegments bounds the non-flag prefix that identifies a
// command family.
const maxSignatureSegments = 4

// Signature returns the command signature: the first non-flag tokens
// of the sequence, at most four, order preserved.
func Signature(parts []string) []string {
	var sig []string
	for _, part := range parts {
		if strings.HasPrefix(part, "--") {
			continue
		}
		sig = append(sig, part)
		if len(sig) == maxSignatureSegments {
			break
		}
	}
	return sig
}

// Label renders a signature for display.
func Label(signature []string) string {
	return strings.Join(signature, " ")
}

// SearchKey derives the environment-variable search key for a flag:
// leading dashes stripped, dashes to underscores, upper-cased.
func SearchKey(flag string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.Trim(flag, "-"), "-", "_"))
}
