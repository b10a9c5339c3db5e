// Package pathutil provides shared path validation helpers.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateLocalPath validates a file path supplied through configuration.
// It rejects empty paths, null bytes, and any ".." segment. Traversal is
// detected segment by segment before cleaning, so "scripts/../etc/x" is
// rejected even though its cleaned form contains no "..".
func ValidateLocalPath(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return fmt.Errorf("file path contains invalid characters")
	}
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return fmt.Errorf("file path contains path traversal: %q", path)
		}
	}
	return nil
}

// RequireExtension validates that the path carries one of the given
// extensions (compared case-insensitively, including the dot).
func RequireExtension(path string, exts ...string) error {
	got := strings.ToLower(filepath.Ext(path))
	for _, ext := range exts {
		if got == strings.ToLower(ext) {
			return nil
		}
	}
	return fmt.Errorf("file path %q must have one of the extensions %v", path, exts)
}
