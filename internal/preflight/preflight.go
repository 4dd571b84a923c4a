// Package preflight checks file-path arguments before any subprocess
// is launched. Purely local: it never touches the network or the
// wrapped tool.
package preflight

import (
	"fmt"
	"os"

	"github.com/tknbr/ocivet/internal/resolve"
)

// filePathFlags are the flags whose next token must name an existing
// regular file.
var filePathFlags = map[string]bool{
	"--ssh-authorized-keys-file": true,
	"--file":                     true,
	"--from-json":                true,
	"--actions":                  true,
}

// Check validates every file-path flag in the resolved sequence. The
// first problem found is returned as an error; nil means all paths
// (if any) exist.
func Check(parts []string) error {
	for i, part := range parts {
		if !filePathFlags[part] {
			continue
		}
		if i+1 >= len(parts) {
			return fmt.Errorf("flag %s expects a file path but is the last argument", part)
		}
		path := resolve.ExpandHome(parts[i+1])
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			return fmt.Errorf("the file specified for %s does not exist: %s", part, parts[i+1])
		}
	}
	return nil
}
