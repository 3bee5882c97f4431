package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes content to name inside a per-test temp directory and
// returns the full path.
func WriteFile(t testing.TB, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
