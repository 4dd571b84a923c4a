// Package analyze inspects failed or empty executions and proposes a
// single corrective re-invocation. It is a best-effort heuristic over
// a few known OCI CLI error phrasings, not a parser for the tool's
// full error grammar: missing a fix is fine, suggesting a wrong one
// is not, so every suggestion is anchored to the literal flag name
// captured from stderr.
package analyze

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/tknbr/ocivet/internal/envstore"
	"github.com/tknbr/ocivet/internal/validate"
)

// missingOptionPatterns are the recognized "missing argument" shapes.
// Each must capture the flag name.
var missingOptionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`Missing option\(s\)\s+(--[a-zA-Z0-9-]+)`),
	regexp.MustCompile(`Missing required parameter\s+(--[a-zA-Z0-9-]+)`),
}

// Suggestion pairs a missing flag with the environment variable whose
// value should fill it.
type Suggestion struct {
	Flag     string
	Variable string
}

// SuggestFix scans stderr for a recognizable missing-option error and
// looks for a variable whose name contains the flag's search key.
func SuggestFix(stderr string, env *envstore.Store) (Suggestion, bool) {
	var flag string
	for _, pattern := range missingOptionPatterns {
		if m := pattern.FindStringSubmatch(stderr); m != nil {
			flag = m[1]
			break
		}
	}
	if flag == "" {
		return Suggestion{}, false
	}

	key := validate.SearchKey(flag)
	candidates := env.Matching(key)
	if len(candidates) == 0 {
		return Suggestion{}, false
	}
	variable := candidates[0]
	for _, c := range candidates {
		if c == key {
			return Suggestion{Flag: flag, Variable: c}, true
		}
	}
	if len(candidates) > 1 {
		if matches := fuzzy.Find(key, candidates); len(matches) > 0 {
			variable = matches[0].Str
		}
	}
	return Suggestion{Flag: flag, Variable: variable}, true
}

// narrowingFlags are listing filters whose removal broadens a query.
// Order matters: the first one present is the one offered.
var narrowingFlags = []string{
	"--lifecycle-state",
	"--display-name",
	"--availability-domain",
	"--limit",
}

// IsEmptyResult reports whether a successful execution returned
// nothing useful: blank output, an empty JSON collection, or the OCI
// list envelope with an empty data array.
func IsEmptyResult(stdout string) bool {
	trimmed := strings.TrimSpace(stdout)
	switch trimmed {
	case "", "[]", "{}":
		return true
	}
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return false
	}
	return envelope.Data != nil && len(envelope.Data) == 0
}

// SuggestBroadening proposes dropping one narrowing filter (and its
// value) from the sequence. Returns the broadened sequence, the flag
// removed, and whether anything was found to drop.
func SuggestBroadening(parts []string) ([]string, string, bool) {
	for _, flag := range narrowingFlags {
		for i, part := range parts {
			if part != flag {
				continue
			}
			broadened := append([]string(nil), parts[:i]...)
			rest := i + 1
			if rest < len(parts) && !strings.HasPrefix(parts[rest], "--") {
				rest++
			}
			broadened = append(broadened, parts[rest:]...)
			return broadened, flag, true
		}
	}
	return parts, "", false
}
