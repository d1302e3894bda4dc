package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidatePositive checks that a named dimension is strictly positive.
func ValidatePositive(name string, v float64) error {
	if !(v > 0) {
		return New(ErrCodeInvalidConfig, "%s must be a positive number", name)
	}
	return nil
}

// ValidateLightCount checks that an explicit fixture count is not negative.
// Zero means automatic.
func ValidateLightCount(name string, n int) error {
	if n < 0 {
		return New(ErrCodeInvalidConfig, "%s light count cannot be negative", name)
	}
	return nil
}

// designExtensions maps accepted design file extensions to their format.
var designExtensions = map[string]string{
	".json": "json",
	".toml": "toml",
	".yaml": "yaml",
	".yml":  "yaml",
}

// ValidateDesignFilename validates a design file name and returns the
// format implied by its extension.
//
// Validation rules:
//   - Name cannot be empty
//   - No null bytes or control characters
//   - Extension must be .json, .toml, .yaml or .yml
func ValidateDesignFilename(name string) (string, error) {
	if name == "" {
		return "", New(ErrCodeInvalidPath, "design filename cannot be empty")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", New(ErrCodeInvalidPath, "design filename contains invalid characters")
		}
	}
	format, ok := designExtensions[strings.ToLower(filepath.Ext(name))]
	if !ok {
		return "", New(ErrCodeInvalidFormat, "unsupported design file %q (use .json, .toml or .yaml)", filepath.Base(name))
	}
	return format, nil
}

// ValidateTopicSegment validates a single MQTT topic level such as a
// design ID. Wildcards and separators are rejected so a segment can never
// widen the topic it is inserted into.
func ValidateTopicSegment(s string) error {
	if s == "" {
		return New(ErrCodeInvalidInput, "topic segment cannot be empty")
	}
	if len(s) > 128 {
		return New(ErrCodeInvalidInput, "topic segment too long (max 128 characters)")
	}
	if strings.ContainsAny(s, "+#/") {
		return New(ErrCodeInvalidInput, "topic segment cannot contain '+', '#' or '/': %q", s)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "topic segment contains invalid characters")
		}
	}
	return nil
}

// ValidateCacheURL checks that a shared cache URL uses a supported scheme.
func ValidateCacheURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "cache URL cannot be empty")
	}
	for _, scheme := range []string{"redis://", "rediss://", "mongodb://", "mongodb+srv://"} {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "cache URL must use redis://, rediss://, mongodb:// or mongodb+srv://")
}
