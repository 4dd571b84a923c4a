package envstore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLookupAndNames(t *testing.T) {
	s := NewStore(map[string]string{"B_VAR": "2", "A_VAR": "1"})

	if v, ok := s.Lookup("A_VAR"); !ok || v != "1" {
		t.Errorf("Lookup(A_VAR) = (%q, %v), want (\"1\", true)", v, ok)
	}
	if _, ok := s.Lookup("MISSING"); ok {
		t.Error("Lookup(MISSING) reported present")
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"A_VAR", "B_VAR"}) {
		t.Errorf("Names() = %v, want sorted names", got)
	}
}

func TestMatching(t *testing.T) {
	s := NewStore(map[string]string{
		"OCI_COMPARTMENT_ID": "x",
		"COMPARTMENT_ID":     "y",
		"TENANCY_ID":         "z",
	})

	got := s.Matching("COMPARTMENT_ID")
	want := []string{"COMPARTMENT_ID", "OCI_COMPARTMENT_ID"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Matching() = %v, want %v", got, want)
	}

	if got := s.Matching("NO_SUCH_KEY"); got != nil {
		t.Errorf("Matching(no hit) = %v, want nil", got)
	}
}

func TestSnapshotWithDotenv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "COMPARTMENT_ID=ocid1.compartment.oc1..aaaa1234\nREGION=us-ashburn-1\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := SnapshotWithDotenv(envFile)
	if err != nil {
		t.Fatalf("SnapshotWithDotenv() error = %v", err)
	}

	if v, ok := s.Lookup("COMPARTMENT_ID"); !ok || v != "ocid1.compartment.oc1..aaaa1234" {
		t.Errorf("dotenv value = (%q, %v)", v, ok)
	}
	// Process environment entries are present too.
	if s.Len() <= 2 {
		t.Errorf("Len() = %d, want process env included", s.Len())
	}
}

func TestSnapshotWithDotenvProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("OCIVET_TEST_VAR=from_file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OCIVET_TEST_VAR", "from_process")

	s, err := SnapshotWithDotenv(envFile)
	if err != nil {
		t.Fatalf("SnapshotWithDotenv() error = %v", err)
	}
	if v, _ := s.Lookup("OCIVET_TEST_VAR"); v != "from_process" {
		t.Errorf("value = %q, want process env to win", v)
	}
}

func TestSnapshotWithDotenvMissingFile(t *testing.T) {
	s, err := SnapshotWithDotenv(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("missing env file should not error, got %v", err)
	}
	if s.Len() == 0 {
		t.Error("snapshot missing process environment")
	}
}
