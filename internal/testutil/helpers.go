package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateLanguageDir creates a language directory under langDir holding the
// given files (relative path -> content) and returns its path.
func CreateLanguageDir(t *testing.T, langDir, code string, files map[string]string) string {
	t.Helper()

	root := filepath.Join(langDir, code)
	if err := os.MkdirAll(root, 0755); err != nil {
		t.Fatalf("Failed to create language directory: %v", err)
	}

	for rel, content := range files {
		CreateTestFile(t, filepath.Join(root, filepath.FromSlash(rel)), []byte(content))
	}

	return root
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if string(actual) != string(expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t *testing.T, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}

// SnapshotDir returns the content of every file below dir keyed by its
// slash separated relative path. A missing directory yields an empty map.
func SnapshotDir(t *testing.T, dir string) map[string]string {
	t.Helper()

	snap := make(map[string]string)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return snap
	}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		snap[filepath.ToSlash(rel)] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to snapshot directory %s: %v", dir, err)
	}

	return snap
}

// CompareDirectories fails the test unless both directories hold the same
// files with the same content.
func CompareDirectories(t *testing.T, dir1, dir2 string) {
	t.Helper()

	a := SnapshotDir(t, dir1)
	b := SnapshotDir(t, dir2)

	for rel, content := range a {
		other, ok := b[rel]
		if !ok {
			t.Errorf("File missing in second directory: %s", rel)
			continue
		}
		if other != content {
			t.Errorf("File content mismatch for %s", rel)
		}
	}
	for rel := range b {
		if _, ok := a[rel]; !ok {
			t.Errorf("File missing in first directory: %s", rel)
		}
	}
}
