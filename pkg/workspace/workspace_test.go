package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
}

func TestListSources(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "build.rs", "Cargo.toml", "README.md")
	srcDir := filepath.Join(dir, "src")
	if err := os.Mkdir(srcDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, srcDir, "main.rs", "lib.rs", "notes.txt")

	got, err := ListSources(dir)
	if err != nil {
		t.Fatalf("ListSources failed: %v", err)
	}

	want := []string{"build.rs", "lib.rs", "main.rs"}
	if len(got) != len(want) {
		t.Fatalf("ListSources = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListSources[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestListSourcesWithoutSrcDir(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "main.rs")

	got, err := ListSources(dir)
	if err != nil {
		t.Fatalf("ListSources failed: %v", err)
	}
	if len(got) != 1 || got[0] != "main.rs" {
		t.Errorf("ListSources = %v, want [main.rs]", got)
	}
}

func TestListSourcesMissingDir(t *testing.T) {
	if _, err := ListSources(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("ListSources should fail for a missing directory")
	}
}

func TestHasManifest(t *testing.T) {
	dir := t.TempDir()
	if HasManifest(dir) {
		t.Error("Empty directory should not look like a workspace")
	}
	writeFiles(t, dir, "Cargo.toml")
	if !HasManifest(dir) {
		t.Error("Directory with Cargo.toml should look like a workspace")
	}
}
