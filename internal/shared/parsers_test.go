// filepath: internal/shared/parsers_test.go
package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		hasError bool
	}{
		{"8MB", 8 * 1024 * 1024, false},
		{"512KB", 512 * 1024, false},
		{"1GB", 1 * 1024 * 1024 * 1024, false},
		{"100", 100, false},        // Bytes
		{"1024B", 1024, false},     // Bytes with suffix
		{" 4 MB ", 4194304, false}, // Spaces
		{"8mb", 8388608, false},    // Lowercase
		{"invalid", 0, true},
		{"10XB", 0, true},
		{"-10MB", 0, true}, // Regex expects digits, not negatives
	}

	for _, tc := range tests {
		val, err := ParseSize(tc.input)
		if tc.hasError {
			assert.Error(t, err, "Expected error for input: %s", tc.input)
		} else {
			assert.NoError(t, err, "Unexpected error for input: %s", tc.input)
			assert.Equal(t, tc.expected, val, "Mismatch for input: %s", tc.input)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		hasError bool
	}{
		{"30d", 30 * 24 * time.Hour, false},
		{"24h", 24 * time.Hour, false},
		{"15m", 15 * time.Minute, false},
		{"45s", 45 * time.Second, false},
		{"0", 0, false},
		{"0d", 0, false},
		{"1w", 0, true},
		{"soon", 0, true},
		{"", 0, true},
	}

	for _, tc := range tests {
		val, err := ParseDuration(tc.input)
		if tc.hasError {
			assert.Error(t, err, "Expected error for input: %s", tc.input)
		} else {
			assert.NoError(t, err, "Unexpected error for input: %s", tc.input)
			assert.Equal(t, tc.expected, val, "Mismatch for input: %s", tc.input)
		}
	}
}
