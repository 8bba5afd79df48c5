package errors

import (
	"strings"
	"unicode"
)

// ValidateServerURL validates an inventory server URL.
// It ensures the URL has a safe scheme (http or https) and no trailing slash
// ambiguity is handled by the caller.
func ValidateServerURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "server URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "server URL must use http or https scheme")
	}

	return nil
}

// ValidateOutputPath validates an output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateAttributeKey validates a template field attribute key.
// Keys reference asset attributes and must be simple non-empty identifiers.
func ValidateAttributeKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidTemplate, "field attribute key cannot be empty")
	}

	if len(key) > 128 {
		return New(ErrCodeInvalidTemplate, "field attribute key too long (max 128 characters)")
	}

	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidTemplate, "field attribute key %q contains whitespace or control characters", key)
		}
	}

	return nil
}
