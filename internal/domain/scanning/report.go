package scanning

// ReportEntry is the presentation form of a flagged file's findings. The
// binary detection flags are converted to human-readable yes/no values at
// this boundary; the report sink serializes these verbatim.
type ReportEntry struct {
	CreditCardFound     string `json:"credit_card_found"`
	SocialSecurityFound string `json:"social_security_found"`
}

// ScanReport aggregates per-file findings for one scan run. It holds only
// positives: a path appears in the report if and only if at least one PII
// category was found in that file.
//
// A report is not safe for concurrent use. The orchestrator funnels all
// worker results through a single collector goroutine, which is the only
// writer.
type ScanReport struct {
	flagged map[string]FileFindings
}

// NewScanReport creates an empty ScanReport.
func NewScanReport() *ScanReport {
	return &ScanReport{flagged: make(map[string]FileFindings)}
}

// Add records the findings for one file. Findings with no PII category found
// are dropped, preserving the positives-only invariant.
func (r *ScanReport) Add(f FileFindings) {
	if !f.Flagged() {
		return
	}
	r.flagged[f.Path] = f
}

// Len returns the number of flagged files in the report.
func (r *ScanReport) Len() int { return len(r.flagged) }

// Findings returns the raw findings for a flagged path and whether the path
// is present in the report.
func (r *ScanReport) Findings(path string) (FileFindings, bool) {
	f, ok := r.flagged[path]
	return f, ok
}

// Entries returns the report in presentation form, keyed by file path.
func (r *ScanReport) Entries() map[string]ReportEntry {
	entries := make(map[string]ReportEntry, len(r.flagged))
	for path, f := range r.flagged {
		entries[path] = ReportEntry{
			CreditCardFound:     yesNo(f.CreditCardFound),
			SocialSecurityFound: yesNo(f.SSNFound),
		}
	}
	return entries
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
