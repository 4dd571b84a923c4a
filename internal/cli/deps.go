// Package cli provides detection of the wrapped command-line tool.
package cli

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
)

// DependencyChecker handles detection of the external CLI tools
// ocivet fronts.
type DependencyChecker struct {
	debug bool
}

// NewDependencyChecker creates a new dependency checker.
func NewDependencyChecker(debug bool) *DependencyChecker {
	return &DependencyChecker{debug: debug}
}

// DependencyStatus represents the status of one CLI tool.
type DependencyStatus struct {
	Name      string
	Installed bool
	Version   string
	Required  bool
	Message   string
}

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// CheckAll checks every tool ocivet depends on.
func (d *DependencyChecker) CheckAll() []DependencyStatus {
	return []DependencyStatus{d.CheckOCI()}
}

// CheckOCI checks whether the OCI CLI is installed and reports its
// version.
func (d *DependencyChecker) CheckOCI() DependencyStatus {
	status := DependencyStatus{
		Name:     "oci",
		Required: true,
	}

	path, err := exec.LookPath("oci")
	if err != nil {
		status.Message = "the OCI CLI is not installed; see https://docs.oracle.com/en-us/iaas/Content/API/SDKDocs/cliinstall.htm"
		return status
	}
	status.Installed = true

	cmd := exec.CommandContext(context.Background(), path, "--version")
	output, err := cmd.Output()
	if err != nil {
		status.Message = "installed, but 'oci --version' failed"
		return status
	}

	status.Version = strings.TrimSpace(string(output))
	if v := versionPattern.FindString(status.Version); v != "" {
		status.Version = v
	}
	return status
}
