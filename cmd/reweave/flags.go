package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func validateInputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("input file is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("input file does not exist: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("input path %s is a directory", abs)
	}

	return nil
}

// isHTMLInput decides the sampling mode from the input extension; anything
// not ending in .html/.htm is treated as a YAML bundle.
func isHTMLInput(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}

// darkOutputPath derives the dark-mode file name from the light one, e.g.
// tokens.yaml becomes tokens.dark.yaml.
func darkOutputPath(out string) string {
	ext := filepath.Ext(out)
	if ext == "" {
		return out + ".dark"
	}
	return strings.TrimSuffix(out, ext) + ".dark" + ext
}
