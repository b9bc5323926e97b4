package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ValidatePath validates a path argument (non-empty, no NUL bytes)
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains a NUL byte: %q", path)
	}
	return nil
}

// ValidateNotEmpty validates that a string is not empty
func ValidateNotEmpty(value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("value cannot be empty")
	}
	return nil
}

// ValidateCharsetName validates an encoding label (basic check)
func ValidateCharsetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("charset name cannot be empty")
	}

	if len(name) > 64 {
		return fmt.Errorf("charset name too long: %s", name)
	}

	for _, c := range name {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_' || c == '.' || c == ':') {
			return fmt.Errorf("charset name contains invalid character: %s", name)
		}
	}

	return nil
}

// ValidateCapacity validates an output buffer capacity
func ValidateCapacity(capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("capacity cannot be negative, got: %d", capacity)
	}
	return nil
}

// ParseFileMode parses an octal permission string such as "0755" or "755"
func ParseFileMode(s string) (os.FileMode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("file mode cannot be empty")
	}

	m, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid file mode: %s", s)
	}

	if m > 0o777 {
		return 0, fmt.Errorf("file mode out of range: %s", s)
	}

	return os.FileMode(m), nil
}
