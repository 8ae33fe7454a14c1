// Package report writes the aggregate scan report to disk.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ahrav/piisweep/internal/domain/scanning"
	"github.com/ahrav/piisweep/pkg/common/logger"
)

// Sink serializes a ScanReport into a timestamped JSON file in the output
// directory. An empty report produces no file at all; a non-empty report is
// written atomically (temp file plus rename), so a partial or corrupt report
// never appears in the output directory.
type Sink struct {
	outputDir string
	logger    *logger.Logger
}

// NewSink creates a Sink writing into outputDir. The directory must already
// exist; validation happens at the CLI boundary before any scan work starts.
func NewSink(outputDir string, log *logger.Logger) *Sink {
	return &Sink{
		outputDir: outputDir,
		logger:    log.With("component", "report_sink"),
	}
}

// Write persists the report, naming the file from the scan completion time at
// second resolution. It returns the path of the written file, or an empty
// path when the report has no flagged files.
func (s *Sink) Write(ctx context.Context, report *scanning.ScanReport, finishedAt time.Time) (string, error) {
	if report.Len() == 0 {
		return "", nil
	}

	data, err := json.MarshalIndent(report.Entries(), "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	path := filepath.Join(s.outputDir, Filename(finishedAt))

	tmp, err := os.CreateTemp(s.outputDir, ".pii_report_*")
	if err != nil {
		return "", fmt.Errorf("creating temp report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("renaming report file: %w", err)
	}

	s.logger.Info(ctx, "Report written", "path", path, "flagged_files", report.Len())
	return path, nil
}

// Filename returns the report file name for a scan that finished at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("pii_files_found_report_%s.json", t.Format("01_06_02__15_04_05"))
}
