// Package envstore provides the read-only variable store: a snapshot
// of the process environment, optionally overlaid with entries from a
// .env file. One snapshot is taken per session; resolution never
// mutates the environment.
package envstore

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Store is an immutable name → value snapshot.
type Store struct {
	vars  map[string]string
	names []string
}

// Snapshot captures the current process environment.
func Snapshot() *Store {
	vars := make(map[string]string)
	for _, entry := range os.Environ() {
		if k, v, ok := strings.Cut(entry, "="); ok {
			vars[k] = v
		}
	}
	return newStore(vars)
}

// SnapshotWithDotenv captures the process environment overlaid with a
// .env file. Process env wins over file entries. A missing file is
// not an error; an unreadable or malformed one is.
func SnapshotWithDotenv(path string) (*Store, error) {
	vars := make(map[string]string)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v := viper.New()
			v.SetConfigFile(path)
			v.SetConfigType("dotenv")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading env file %s: %w", path, err)
			}
			for _, key := range v.AllKeys() {
				// viper lowercases keys; .env names are upper-snake
				// by convention, and search-key derivation assumes it.
				vars[strings.ToUpper(key)] = v.GetString(key)
			}
		}
	}

	for _, entry := range os.Environ() {
		if k, v, ok := strings.Cut(entry, "="); ok {
			vars[k] = v
		}
	}
	return newStore(vars), nil
}

// NewStore builds a store from an explicit map (tests, mostly).
func NewStore(vars map[string]string) *Store {
	copied := make(map[string]string, len(vars))
	for k, v := range vars {
		copied[k] = v
	}
	return newStore(copied)
}

func newStore(vars map[string]string) *Store {
	names := make([]string, 0, len(vars))
	for k := range vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return &Store{vars: vars, names: names}
}

// Lookup returns the value for an exact variable name.
func (s *Store) Lookup(name string) (string, bool) {
	v, ok := s.vars[name]
	return v, ok
}

// Names returns all variable names in sorted order.
func (s *Store) Names() []string { return s.names }

// Matching returns the names containing the given substring, in
// sorted order.
func (s *Store) Matching(substr string) []string {
	var out []string
	for _, name := range s.names {
		if strings.Contains(name, substr) {
			out = append(out, name)
		}
	}
	return out
}

// Len reports the number of variables in the snapshot.
func (s *Store) Len() int { return len(s.vars) }
