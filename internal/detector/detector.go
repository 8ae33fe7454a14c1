// Package detector implements the PII detectors run over extracted file text.
// It provides syntactic matching for social security numbers and checksum
// validated matching for credit card numbers. Detection is pure computation:
// no I/O, no mutable state after construction, safe for concurrent use by
// every scan worker.
package detector

import (
	"fmt"
	"strings"

	regexp "github.com/wasilibs/go-re2"
)

// Set is an immutable pair of compiled PII detectors. A Set is constructed
// once at process start and shared by reference across the worker pool.
type Set struct {
	ssn  *regexp.Regexp
	card *regexp.Regexp

	cardMinLen int
	cardMaxLen int
}

// NewSet compiles a detector Set from the given configuration.
func NewSet(cfg Config) (*Set, error) {
	ssn, err := regexp.Compile(cfg.SSN.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling ssn pattern: %w", err)
	}

	card, err := regexp.Compile(cfg.CreditCard.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling credit card pattern: %w", err)
	}

	return &Set{
		ssn:        ssn,
		card:       card,
		cardMinLen: cfg.CreditCard.MinLength,
		cardMaxLen: cfg.CreditCard.MaxLength,
	}, nil
}

// NewDefaultSet compiles a detector Set from the embedded default configuration.
func NewDefaultSet() (*Set, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	return NewSet(cfg)
}

// DetectSSN reports whether text contains a social-security-number-shaped
// token: three digits, a separator (hyphen, space, or period), two digits,
// another separator, four digits, standing alone rather than embedded in a
// longer digit run. There is no checksum for SSNs, so a syntactic match is
// sufficient to flag; this trades precision for recall on purpose.
func (s *Set) DetectSSN(text string) bool {
	return s.ssn.MatchString(text)
}

// DetectCreditCard reports whether text contains a credit-card-shaped token
// that also passes the Luhn checksum. Every syntactic candidate in the text
// is considered; a single valid one flags the file. Candidates whose checksum
// fails are ignored, which is what separates this detector from a naive
// pattern scan.
func (s *Set) DetectCreditCard(text string) bool {
	for _, candidate := range s.card.FindAllString(text, -1) {
		digits := sanitizeCardCandidate(candidate)
		if len(digits) < s.cardMinLen || len(digits) > s.cardMaxLen {
			continue
		}
		if luhnValid(digits) {
			return true
		}
	}
	return false
}

// sanitizeCardCandidate strips the grouping separators a card number may be
// written with, leaving only digits for checksum validation.
func sanitizeCardCandidate(candidate string) string {
	candidate = strings.ReplaceAll(candidate, "-", "")
	return strings.ReplaceAll(candidate, " ", "")
}
