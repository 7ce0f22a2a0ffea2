package io

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactName returns the output file name for the index-th chord
// (0-based) with the given extension: ArtifactName(0, "svg") is "chord_1.svg".
func ArtifactName(index int, ext string) string {
	return fmt.Sprintf("chord_%d.%s", index+1, ext)
}

// ExportFile writes data to dir/name, creating dir if needed, and
// returns the written path.
func ExportFile(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
