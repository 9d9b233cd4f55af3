package errors

import (
	"strings"
	"unicode"
)

// ValidateTargetName validates a backend registration name.
// Names are matched exactly by the registry, so they must be non-empty and
// contain no whitespace or control characters.
func ValidateTargetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "target name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "target name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "target name contains invalid characters: %q", name)
		}
	}

	return nil
}

// ValidateOutputPath validates a render output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//   - Must name a file, not a directory (no trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
