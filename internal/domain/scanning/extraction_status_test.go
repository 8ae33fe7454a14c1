package scanning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionStatus_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   ExtractionStatus
		expected string
	}{
		{
			name:     "extracted status",
			status:   StatusExtracted,
			expected: "EXTRACTED",
		},
		{
			name:     "no content status",
			status:   StatusNoContent,
			expected: "NO_CONTENT",
		},
		{
			name:     "failed status",
			status:   StatusFailed,
			expected: "FAILED",
		},
		{
			name:     "unspecified status",
			status:   StatusUnspecified,
			expected: "UNSPECIFIED",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestParseExtractionStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected ExtractionStatus
	}{
		{
			name:     "extracted",
			input:    "EXTRACTED",
			expected: StatusExtracted,
		},
		{
			name:     "no content",
			input:    "NO_CONTENT",
			expected: StatusNoContent,
		},
		{
			name:     "failed",
			input:    "FAILED",
			expected: StatusFailed,
		},
		{
			name:     "unknown value maps to unspecified",
			input:    "definitely-not-a-status",
			expected: StatusUnspecified,
		},
		{
			name:     "empty string maps to unspecified",
			input:    "",
			expected: StatusUnspecified,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ParseExtractionStatus(tt.input))
		})
	}
}
