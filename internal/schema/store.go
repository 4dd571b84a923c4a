// Package schema owns the template store: one YAML template per
// command signature in a configured directory, plus a shared
// common-schema table referenced by templates via $ref.
package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// CommonSchemasFilename holds the shared schema table; it is skipped
// when listing templates.
const CommonSchemasFilename = "common_schemas.yaml"

// ErrNotFound reports that no template exists for a signature or
// name. Callers treat it as "no deep validation", not a failure.
var ErrNotFound = errors.New("template not found")

// Template is the stored structural contract for one command family.
type Template struct {
	Command      string                    `yaml:"command"`
	RequiredArgs []string                  `yaml:"required_args"`
	ArgSchemas   map[string]map[string]any `yaml:"arg_schemas"`
}

// Empty reports whether the template carries no constraints at all.
// Empty templates are not worth persisting.
func (t *Template) Empty() bool {
	return len(t.RequiredArgs) == 0 && len(t.ArgSchemas) == 0
}

// Store loads and persists templates and exposes the common table.
type Store struct {
	dir    string
	common map[string]any
	log    *zap.SugaredLogger
}

// Open prepares the store directory and loads the common-schema table
// once. A missing common file yields an empty table.
func Open(dir string, log *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating templates dir: %w", err)
	}

	common := map[string]any{}
	commonPath := filepath.Join(dir, CommonSchemasFilename)
	if data, err := os.ReadFile(commonPath); err == nil {
		if err := yaml.Unmarshal(data, &common); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", CommonSchemasFilename, err)
		}
		log.Debugw("loaded common schemas", "path", commonPath, "entries", len(common))
	}

	return &Store{dir: dir, common: common, log: log}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

// Key derives the deterministic template filename stem for a command
// signature: segments joined with "_", embedded spaces normalized.
func Key(signature []string) string {
	return strings.ReplaceAll(strings.Join(signature, "_"), " ", "_")
}

// Lookup returns the template stored for a signature, or ErrNotFound.
func (s *Store) Lookup(signature []string) (*Template, error) {
	if len(signature) == 0 {
		return nil, ErrNotFound
	}
	return s.load(Key(signature))
}

func (s *Store) load(key string) (*Template, error) {
	path := filepath.Join(s.dir, key+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading template %s: %w", key, err)
	}
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", key, err)
	}
	s.log.Debugw("loaded template", "key", key, "required", len(t.RequiredArgs))
	return &t, nil
}

// Save writes a template keyed by the command signature and returns
// the file path.
func (s *Store) Save(signature []string, t *Template) (string, error) {
	data, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("serializing template: %w", err)
	}
	path := filepath.Join(s.dir, Key(signature)+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing template %s: %w", path, err)
	}
	return path, nil
}

// List returns the sorted template names (filename stems), excluding
// the common-schema table.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading templates dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == CommonSchemasFilename || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}

// Show returns the raw serialized template by name.
func (s *Store) Show(name string) (string, error) {
	if name == strings.TrimSuffix(CommonSchemasFilename, ".yaml") {
		return "", ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name+".yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}
	return string(data), nil
}

// Delete removes a stored template by name.
func (s *Store) Delete(name string) error {
	if name == strings.TrimSuffix(CommonSchemasFilename, ".yaml") {
		return fmt.Errorf("%s is not a template", name)
	}
	err := os.Remove(filepath.Join(s.dir, name+".yaml"))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// ResolveRef walks the common table along a dotted path. The second
// return is false when any segment is missing or not a mapping.
func (s *Store) ResolveRef(ref string) (map[string]any, bool) {
	current := any(s.common)
	for _, key := range strings.Split(ref, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	frag, ok := current.(map[string]any)
	return frag, ok
}
