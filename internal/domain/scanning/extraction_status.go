package scanning

// ExtractionStatus represents the terminal outcome of attempting content
// extraction for one scan target. It is a closed set: every extraction call
// resolves to exactly one of these values, there is no open-ended error
// propagation across the task boundary.
type ExtractionStatus string

const (
	// StatusExtracted indicates extraction succeeded and produced non-empty text.
	StatusExtracted ExtractionStatus = "EXTRACTED"

	// StatusNoContent indicates extraction succeeded but produced no usable text.
	StatusNoContent ExtractionStatus = "NO_CONTENT"

	// StatusFailed indicates extraction could not be performed for this file.
	// Unsupported formats, corrupt files, and extraction service errors all
	// collapse into this status.
	StatusFailed ExtractionStatus = "FAILED"

	// StatusUnspecified is used when an extraction status is unknown.
	StatusUnspecified ExtractionStatus = "UNSPECIFIED"
)

// String returns the string representation of the ExtractionStatus.
func (s ExtractionStatus) String() string { return string(s) }

// ParseExtractionStatus converts a string to an ExtractionStatus.
func ParseExtractionStatus(s string) ExtractionStatus {
	switch s {
	case "EXTRACTED":
		return StatusExtracted
	case "NO_CONTENT":
		return StatusNoContent
	case "FAILED":
		return StatusFailed
	default:
		return StatusUnspecified
	}
}
