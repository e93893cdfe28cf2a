// ABOUTME: Tests for the root rootlens package
// ABOUTME: Checks the version constant is present and well formed

package rootlens_test

import (
	"strings"
	"testing"

	"github.com/prateek/rootlens"
)

func TestVersion(t *testing.T) {
	if rootlens.Version == "" {
		t.Error("Version constant should not be empty")
	}
	if !strings.HasPrefix(rootlens.Version, "0.") {
		t.Errorf("Version should start with %q, got %q", "0.", rootlens.Version)
	}
}
