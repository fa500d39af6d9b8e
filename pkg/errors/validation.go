package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateDatasetName validates a dataset name for safety and correctness.
// It rejects names that could be used for path traversal or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateDatasetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidDataset, "dataset name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidDataset, "dataset name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDataset, "dataset name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidDataset, "dataset name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// columnKeyRegex matches valid column keys.
var columnKeyRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9._-]*$`)

// ValidateColumnKey validates a column key used in filter and sort
// parameters. Keys must start with a letter or underscore and may contain
// letters, digits, dots, underscores and hyphens.
func ValidateColumnKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidColumn, "column key cannot be empty")
	}

	if len(key) > 128 {
		return New(ErrCodeInvalidColumn, "column key too long (max 128 characters)")
	}

	if !columnKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidColumn, "invalid column key: %q", key)
	}

	return nil
}

// sessionIDRegex matches UUID-shaped session identifiers.
var sessionIDRegex = regexp.MustCompile(`^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{4}-[a-fA-F0-9]{12}$`)

// ValidateSessionID validates a session identifier before it is used as a
// store lookup key or file name.
func ValidateSessionID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "session ID cannot be empty")
	}

	if !sessionIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid session ID: %q", id)
	}

	return nil
}

// ValidateSortDirection validates a sort direction string.
// Accepted values are "asc", "desc" and the empty string.
func ValidateSortDirection(dir string) error {
	switch strings.ToLower(dir) {
	case "", "asc", "desc":
		return nil
	default:
		return New(ErrCodeInvalidSort, "invalid sort direction: %q (use asc or desc)", dir)
	}
}

// ValidatePageSize validates a requested page size against a hard upper
// bound so a single request cannot force an arbitrarily large response.
func ValidatePageSize(size int) error {
	const maxPageSize = 1000
	if size < 1 {
		return New(ErrCodeInvalidPage, "page size must be at least 1")
	}
	if size > maxPageSize {
		return New(ErrCodeInvalidPage, "page size too large (max %d)", maxPageSize)
	}
	return nil
}
