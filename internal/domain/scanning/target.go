// Package scanning provides the core domain types for representing a single
// PII scan run: the files discovered for scanning, the per-file outcome of
// extraction and detection, and the aggregate report of flagged files.
package scanning

// ScanTarget identifies one regular file discovered during directory
// traversal. Its identity is the absolute path string; a target is created by
// the walker, consumed exactly once by the orchestrator, and never mutated.
type ScanTarget struct {
	path string
}

// NewScanTarget creates a ScanTarget for the given absolute file path.
func NewScanTarget(path string) ScanTarget {
	return ScanTarget{path: path}
}

// Path returns the absolute file path this target refers to.
func (t ScanTarget) Path() string { return t.path }
