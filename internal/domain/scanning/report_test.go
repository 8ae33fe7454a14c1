package scanning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFindings_Flagged(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		findings FileFindings
		expected bool
	}{
		{
			name:     "ssn only",
			findings: FileFindings{Path: "/a", SSNFound: true, Status: StatusExtracted},
			expected: true,
		},
		{
			name:     "credit card only",
			findings: FileFindings{Path: "/b", CreditCardFound: true, Status: StatusExtracted},
			expected: true,
		},
		{
			name:     "both categories",
			findings: FileFindings{Path: "/c", SSNFound: true, CreditCardFound: true, Status: StatusExtracted},
			expected: true,
		},
		{
			name:     "nothing found",
			findings: FileFindings{Path: "/d", Status: StatusExtracted},
			expected: false,
		},
		{
			name:     "failed extraction",
			findings: FailedFindings("/e"),
			expected: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.findings.Flagged())
		})
	}
}

func TestScanReport_AddKeepsOnlyPositives(t *testing.T) {
	t.Parallel()

	report := NewScanReport()
	report.Add(FileFindings{Path: "/flagged.txt", SSNFound: true, Status: StatusExtracted})
	report.Add(FileFindings{Path: "/clean.txt", Status: StatusExtracted})
	report.Add(FileFindings{Path: "/empty.doc", Status: StatusNoContent})
	report.Add(FailedFindings("/broken.pdf"))

	require.Equal(t, 1, report.Len())

	_, ok := report.Findings("/clean.txt")
	assert.False(t, ok)

	f, ok := report.Findings("/flagged.txt")
	require.True(t, ok)
	assert.True(t, f.SSNFound)
	assert.False(t, f.CreditCardFound)
}

func TestScanReport_EntriesPresentation(t *testing.T) {
	t.Parallel()

	report := NewScanReport()
	report.Add(FileFindings{Path: "/ssn.txt", SSNFound: true, Status: StatusExtracted})
	report.Add(FileFindings{Path: "/card.txt", CreditCardFound: true, Status: StatusExtracted})

	entries := report.Entries()
	require.Len(t, entries, 2)

	assert.Equal(t, ReportEntry{CreditCardFound: "No", SocialSecurityFound: "Yes"}, entries["/ssn.txt"])
	assert.Equal(t, ReportEntry{CreditCardFound: "Yes", SocialSecurityFound: "No"}, entries["/card.txt"])
}

func TestScanReport_AddOverwritesSamePath(t *testing.T) {
	t.Parallel()

	report := NewScanReport()
	report.Add(FileFindings{Path: "/a", SSNFound: true, Status: StatusExtracted})
	report.Add(FileFindings{Path: "/a", SSNFound: true, CreditCardFound: true, Status: StatusExtracted})

	require.Equal(t, 1, report.Len())
	f, ok := report.Findings("/a")
	require.True(t, ok)
	assert.True(t, f.CreditCardFound)
}
