package cli

import (
	"testing"
)

func TestDependencyChecker_CheckOCI(t *testing.T) {
	checker := NewDependencyChecker(false)
	status := checker.CheckOCI()

	if status.Name != "oci" {
		t.Errorf("CheckOCI().Name = %s, want oci", status.Name)
	}
	if !status.Required {
		t.Error("CheckOCI().Required = false, want true")
	}
	if !status.Installed && status.Message == "" {
		t.Error("missing tool must carry an explanatory message")
	}

	// Either installed or not, but should not panic
	t.Logf("oci installed: %v, version: %s", status.Installed, status.Version)
}

func TestCheckAllIncludesOCI(t *testing.T) {
	deps := NewDependencyChecker(false).CheckAll()
	if len(deps) != 1 || deps[0].Name != "oci" {
		t.Errorf("CheckAll() = %+v, want the oci entry", deps)
	}
}
