package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/tknbr/ocivet/internal/envstore"
	"github.com/tknbr/ocivet/internal/redact"
	"github.com/tknbr/ocivet/internal/runner"
	"github.com/tknbr/ocivet/internal/schema"
	"github.com/tknbr/ocivet/internal/ui"
)

type fakeRunner struct {
	results []runner.Result
	calls   [][]string
}

func (f *fakeRunner) Run(_ context.Context, parts []string) runner.Result {
	f.calls = append(f.calls, append([]string(nil), parts...))
	if len(f.calls) > len(f.results) {
		return runner.Result{}
	}
	return f.results[len(f.calls)-1]
}

type scriptedPrompter struct {
	answers []bool
	calls   int
}

func (p *scriptedPrompter) Confirm(string, bool) bool {
	if p.calls >= len(p.answers) {
		return false
	}
	answer := p.answers[p.calls]
	p.calls++
	return answer
}

func newSession(t *testing.T, vars map[string]string, results []runner.Result, answers []bool, strict bool) (*Session, *fakeRunner, *bytes.Buffer) {
	t.Helper()
	store, err := schema.Open(t.TempDir(), zap.NewNop().Sugar())
	if err != nil {
		t.Fatal(err)
	}

	fake := &fakeRunner{results: results}
	out := &bytes.Buffer{}
	var prompt ui.Prompter = &scriptedPrompter{answers: answers}
	if strict {
		prompt = ui.Deny{}
	}
	return &Session{
		Env:      envstore.NewStore(vars),
		Store:    store,
		Runner:   fake,
		Prompt:   prompt,
		Console:  ui.NewConsole(out),
		Redactor: redact.New(redact.Full),
		Strict:   strict,
		Log:      zap.NewNop().Sugar(),
	}, fake, out
}

func TestRunSuccess(t *testing.T) {
	results := []runner.Result{{ExitCode: 0, Stdout: `{"data": [{"id": "ocid1.instance.oc1.iad.abc123"}]}`}}
	s, fake, out := newSession(t, nil, results, nil, false)

	code := s.Run(context.Background(), []string{"oci", "iam", "region", "list"})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if len(fake.calls) != 1 {
		t.Errorf("runner calls = %d, want 1", len(fake.calls))
	}
	if strings.Contains(out.String(), "ocid1.instance") {
		t.Errorf("output not redacted: %s", out.String())
	}
	if !strings.Contains(out.String(), "[REDACTED_OCID]") {
		t.Errorf("redaction placeholder missing: %s", out.String())
	}
}

func TestRunResolutionFailureAborts(t *testing.T) {
	s, fake, out := newSession(t, nil, nil, nil, true)

	code := s.Run(context.Background(), []string{"oci", "iam", "user", "list", "--compartment-id", "$UNSET"})
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if len(fake.calls) != 0 {
		t.Errorf("runner calls = %d, want 0 before resolution", len(fake.calls))
	}
	if !strings.Contains(out.String(), "session aborted") {
		t.Errorf("abort not visible in output: %s", out.String())
	}
}

func TestRunPreflightFailureAborts(t *testing.T) {
	s, fake, _ := newSession(t, nil, nil, nil, false)

	code := s.Run(context.Background(), []string{"oci", "os", "object", "put", "--file", "/no/such/file"})
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if len(fake.calls) != 0 {
		t.Errorf("runner calls = %d, want 0 after preflight failure", len(fake.calls))
	}
}

func TestRunValidationFailureAborts(t *testing.T) {
	s, fake, _ := newSession(t, nil, nil, nil, false)
	sig := []string{"oci", "compute", "instance", "list"}
	if _, err := s.Store.Save(sig, &schema.Template{
		Command:      "oci compute instance list",
		RequiredArgs: []string{"--compartment-id"},
	}); err != nil {
		t.Fatal(err)
	}

	code := s.Run(context.Background(), sig)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if len(fake.calls) != 0 {
		t.Errorf("runner calls = %d, want 0 after validation failure", len(fake.calls))
	}
}

func TestRunFailureWithAcceptedFix(t *testing.T) {
	vars := map[string]string{"COMPARTMENT_ID": "ocid1.compartment.oc1..aaaa1234"}
	results := []runner.Result{
		{ExitCode: 2, Stderr: "Missing option(s) --compartment-id"},
		{ExitCode: 0, Stdout: `{"data": [{"id": "i"}]}`},
	}
	s, fake, _ := newSession(t, vars, results, []bool{true}, false)

	code := s.Run(context.Background(), []string{"oci", "compute", "instance", "list"})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0 after corrected re-run", code)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("runner calls = %d, want 2", len(fake.calls))
	}
	want := []string{"oci", "compute", "instance", "list", "--compartment-id", "ocid1.compartment.oc1..aaaa1234"}
	if !reflect.DeepEqual(fake.calls[1], want) {
		t.Errorf("re-run argv = %v, want %v", fake.calls[1], want)
	}
}

func TestRunFailureDeclinedFixKeepsExitCode(t *testing.T) {
	vars := map[string]string{"COMPARTMENT_ID": "x"}
	results := []runner.Result{{ExitCode: 2, Stderr: "Missing option(s) --compartment-id"}}
	s, fake, _ := newSession(t, vars, results, []bool{false}, false)

	code := s.Run(context.Background(), []string{"oci", "compute", "instance", "list"})
	if code != 2 {
		t.Errorf("exit code = %d, want child's 2", code)
	}
	if len(fake.calls) != 1 {
		t.Errorf("runner calls = %d, want 1 (no retry)", len(fake.calls))
	}
}

func TestRunStrictNeverRetries(t *testing.T) {
	vars := map[string]string{"COMPARTMENT_ID": "x"}
	results := []runner.Result{{ExitCode: 2, Stderr: "Missing option(s) --compartment-id"}}
	s, fake, _ := newSession(t, vars, results, nil, true)

	code := s.Run(context.Background(), []string{"oci", "compute", "instance", "list"})
	if code != 2 {
		t.Errorf("exit code = %d, want 2", code)
	}
	if len(fake.calls) != 1 {
		t.Errorf("runner calls = %d, want 1 in strict mode", len(fake.calls))
	}
}

func TestRunEmptyResultBroadening(t *testing.T) {
	results := []runner.Result{
		{ExitCode: 0, Stdout: `{"data": []}`},
		{ExitCode: 0, Stdout: `{"data": [{"id": "i"}]}`},
	}
	s, fake, _ := newSession(t, nil, results, []bool{true}, false)

	parts := []string{"oci", "compute", "instance", "list", "--lifecycle-state", "RUNNING"}
	code := s.Run(context.Background(), parts)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if len(fake.calls) != 2 {
		t.Fatalf("runner calls = %d, want 2", len(fake.calls))
	}
	want := []string{"oci", "compute", "instance", "list"}
	if !reflect.DeepEqual(fake.calls[1], want) {
		t.Errorf("broadened argv = %v, want %v", fake.calls[1], want)
	}
}

func TestRunEmptyResultNoBroadeningCandidate(t *testing.T) {
	results := []runner.Result{{ExitCode: 0, Stdout: "[]"}}
	s, fake, _ := newSession(t, nil, results, []bool{true}, false)

	code := s.Run(context.Background(), []string{"oci", "iam", "region", "list"})
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if len(fake.calls) != 1 {
		t.Errorf("runner calls = %d, want 1", len(fake.calls))
	}
}

func TestRunCommandLineIsRedactedInOutput(t *testing.T) {
	results := []runner.Result{{ExitCode: 0, Stdout: "ok"}}
	s, _, out := newSession(t, nil, results, nil, false)

	s.Run(context.Background(), []string{"oci", "compute", "instance", "get",
		"--instance-id", "ocid1.instance.oc1.iad.secretsecret"})

	if strings.Contains(out.String(), "secretsecret") {
		t.Errorf("displayed command leaked an OCID: %s", out.String())
	}
}

func TestRunPreflightPassesWithRealFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	results := []runner.Result{{ExitCode: 0, Stdout: "done"}}
	s, fake, _ := newSession(t, nil, results, nil, false)

	code := s.Run(context.Background(), []string{"oci", "network", "vcn", "create", "--from-json", path})
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if len(fake.calls) != 1 {
		t.Errorf("runner calls = %d, want 1", len(fake.calls))
	}
}
