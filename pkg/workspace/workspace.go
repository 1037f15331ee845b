// Package workspace inspects a selected project directory for display in
// the sidebar.
package workspace

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListSources returns the names of Rust source files in dir and in its src
// subdirectory, each group sorted by name. Top-level files come first, the
// way the directory picker presents them.
func ListSources(dir string) ([]string, error) {
	names, err := listDir(dir)
	if err != nil {
		return nil, err
	}

	// src/ is optional; a missing one is not an error.
	srcNames, err := listDir(filepath.Join(dir, "src"))
	if err == nil {
		names = append(names, srcNames...)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	return names, nil
}

// HasManifest reports whether dir looks like a Cargo workspace root.
func HasManifest(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "Cargo.toml"))
	return err == nil
}

func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), ".rs") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
