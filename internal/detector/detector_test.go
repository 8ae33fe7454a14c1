package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSet(t *testing.T) *Set {
	t.Helper()
	set, err := NewDefaultSet()
	require.NoError(t, err)
	return set
}

func TestSet_DetectSSN(t *testing.T) {
	t.Parallel()

	set := newTestSet(t)

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "hyphen separated",
			text:     "SSN: 123-45-6789",
			expected: true,
		},
		{
			name:     "space separated",
			text:     "the number 123 45 6789 appeared in the form",
			expected: true,
		},
		{
			name:     "period separated",
			text:     "123.45.6789",
			expected: true,
		},
		{
			name:     "mixed separators still match",
			text:     "123-45 6789",
			expected: true,
		},
		{
			name:     "embedded in longer digit run",
			text:     "account 9123-45-6789",
			expected: false,
		},
		{
			name:     "trailing digits extend the run",
			text:     "123-45-67890",
			expected: false,
		},
		{
			name:     "no separators",
			text:     "123456789",
			expected: false,
		},
		{
			name:     "plain prose",
			text:     "nothing sensitive to see here",
			expected: false,
		},
		{
			name:     "empty text",
			text:     "",
			expected: false,
		},
		{
			name:     "multiline body",
			text:     "line one\nline two has 987-65-4321 inside\nline three",
			expected: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, set.DetectSSN(tt.text))
		})
	}
}

func TestSet_DetectCreditCard(t *testing.T) {
	t.Parallel()

	set := newTestSet(t)

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "visa without separators",
			text:     "card 4111111111111111 on file",
			expected: true,
		},
		{
			name:     "visa with hyphens",
			text:     "4111-1111-1111-1111",
			expected: true,
		},
		{
			name:     "visa with spaces",
			text:     "4111 1111 1111 1111",
			expected: true,
		},
		{
			name:     "luhn invalid candidate is not flagged",
			text:     "4111-1111-1111-1112",
			expected: false,
		},
		{
			name:     "mastercard range",
			text:     "5555555555554444",
			expected: true,
		},
		{
			name:     "discover range",
			text:     "6011111111111117",
			expected: true,
		},
		{
			name:     "amex range",
			text:     "378282246310005",
			expected: true,
		},
		{
			name:     "thirteen digit visa",
			text:     "pan=4222222222222.",
			expected: true,
		},
		{
			name:     "invalid candidate followed by a valid one",
			text:     "bad 4111111111111112 then good 4111111111111111",
			expected: true,
		},
		{
			name:     "prefix outside the weak classes",
			text:     "9111111111111111",
			expected: false,
		},
		{
			name:     "too short a digit run",
			text:     "4111 1111",
			expected: false,
		},
		{
			name:     "plain prose",
			text:     "lorem ipsum dolor sit amet",
			expected: false,
		},
		{
			name:     "empty text",
			text:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, set.DetectCreditCard(tt.text))
		})
	}
}

func TestNewSet_InvalidPattern(t *testing.T) {
	t.Parallel()

	cfg, err := DefaultConfig()
	require.NoError(t, err)

	cfg.SSN.Pattern = "(["
	_, err = NewSet(cfg)
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg, err := DefaultConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.SSN.Pattern)
	assert.NotEmpty(t, cfg.CreditCard.Pattern)
	assert.Equal(t, 13, cfg.CreditCard.MinLength)
	assert.Equal(t, 19, cfg.CreditCard.MaxLength)
}
