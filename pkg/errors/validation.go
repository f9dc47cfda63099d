package errors

import (
	"strings"
	"unicode"
)

// ValidateName validates a record name (segment name, path name, edge or
// group id) as it appears in a positional GFA field.
//
// The rules are the ones every GFA version agrees on:
//   - No empty names
//   - No whitespace or control characters (they would break the tab grammar)
//   - No leading '*' or '=' (reserved as placeholders)
//
// Orientation suffixes are not checked here; callers strip them first.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name %q contains whitespace or control characters", name)
		}
	}

	if strings.HasPrefix(name, "*") || strings.HasPrefix(name, "=") {
		return New(ErrCodeInvalidName, "name %q starts with a reserved character", name)
	}

	return nil
}

// ValidateOutputPath validates a user supplied output path.
// Empty paths are allowed and mean stdout.
func ValidateOutputPath(path string) error {
	if path == "" {
		return nil
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidInput, "output path %q is a directory", path)
	}

	return nil
}
