package schema

import (
	"fmt"
	"os"
	"strings"

	"github.com/tknbr/ocivet/internal/resolve"
)

// FileValuePrefix marks a flag value whose JSON payload lives in a
// file rather than inline, OCI CLI style.
const FileValuePrefix = "file://"

// ValueBytes returns the raw JSON bytes behind a flag value: the file
// contents when the value carries the file marker, the value itself
// otherwise. A named file that does not exist is an error.
func ValueBytes(value string) ([]byte, error) {
	if !strings.HasPrefix(value, FileValuePrefix) {
		return []byte(value), nil
	}
	path := resolve.ExpandHome(strings.TrimPrefix(value, FileValuePrefix))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("the file specified in the command does not exist: %s", path)
	}
	return data, nil
}
