package scanning

// FileFindings is the terminal detection result for a single file. A worker
// task owns the value exclusively until it hands it to the orchestrator's
// aggregation step; after that it is read-only.
type FileFindings struct {
	// Path is the absolute path of the scanned file.
	Path string

	// SSNFound reports whether the SSN detector matched the extracted text.
	SSNFound bool

	// CreditCardFound reports whether a Luhn-valid card candidate was found.
	CreditCardFound bool

	// Status records how extraction terminated for this file. Detection flags
	// can only be true when Status is StatusExtracted.
	Status ExtractionStatus
}

// Flagged reports whether at least one PII category was found in the file.
// Only flagged files enter the aggregate report.
func (f FileFindings) Flagged() bool {
	return f.SSNFound || f.CreditCardFound
}

// FailedFindings returns the findings value used when extraction or detection
// for a file terminated abnormally: failed status, nothing detected.
func FailedFindings(path string) FileFindings {
	return FileFindings{Path: path, Status: StatusFailed}
}
