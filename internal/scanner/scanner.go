// Package scanner provides the orchestration of a PII scan run: fanning file
// targets out to a bounded worker pool, running extraction and detection per
// file, and fanning results back into a single aggregate report.
package scanner

import (
	"context"
	"runtime"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/piisweep/internal/domain/scanning"
	"github.com/ahrav/piisweep/internal/extractor"
	"github.com/ahrav/piisweep/internal/scanner/metrics"
	"github.com/ahrav/piisweep/pkg/common/logger"
)

// DefaultScanTimeout is the global wall-clock budget for one scan batch when
// none is configured.
const DefaultScanTimeout = 180 * time.Second

// ContentExtractor produces the tri-state extraction outcome for one file.
// Implementations must contain their own failures: Extract returns an
// outcome, never an error.
type ContentExtractor interface {
	Extract(ctx context.Context, path string) extractor.Outcome
}

// DetectorSet answers whether a block of extracted text contains each PII
// category. Implementations must be safe for concurrent use.
type DetectorSet interface {
	DetectSSN(text string) bool
	DetectCreditCard(text string) bool
}

// Config holds the orchestrator's concurrency and deadline settings. Both are
// first-class configuration; zero values fall back to the documented defaults.
type Config struct {
	// Workers bounds the number of concurrent file tasks. Defaults to the
	// CPU count; large trees must never spawn one goroutine per file.
	Workers int

	// ScanTimeout is the global budget for the whole batch. Tasks still
	// pending when it elapses are abandoned, not retried.
	ScanTimeout time.Duration
}

// Scanner coordinates one scan run. It submits one task per discovered file
// to a bounded worker pool, each task calling the extraction client and then
// the detectors, and merges completed results into a ScanReport. Workers
// never share extracted text; each file's content is owned by its own task
// until it is reduced to a FileFindings value.
type Scanner struct {
	id string

	extractor ContentExtractor
	detectors DetectorSet
	metrics   metrics.ScannerMetrics

	workers int
	timeout time.Duration

	logger *logger.Logger
	tracer trace.Tracer
}

// NewScanner creates a Scanner with the given collaborators. The detector set
// is constructed once by the caller and shared by reference across workers.
func NewScanner(
	id string,
	contentExtractor ContentExtractor,
	detectors DetectorSet,
	cfg Config,
	metrics metrics.ScannerMetrics,
	log *logger.Logger,
	tracer trace.Tracer,
) *Scanner {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	timeout := cfg.ScanTimeout
	if timeout <= 0 {
		timeout = DefaultScanTimeout
	}

	return &Scanner{
		id:        id,
		extractor: contentExtractor,
		detectors: detectors,
		metrics:   metrics,
		workers:   workers,
		timeout:   timeout,
		logger:    log.With("component", "scanner", "scanner_id", id),
		tracer:    tracer,
	}
}

// Scan processes every target and returns the aggregate report of flagged
// files. The report contains only positives; extraction failures, empty
// files, and clean files are omitted.
//
// The whole batch runs under a single wall-clock budget. When the budget
// elapses, results collected so far are kept and every still-pending task is
// abandoned: dropped from the report, not counted as a failure, not retried.
// The scan is lossy under extreme load by design and still returns normally.
func (s *Scanner) Scan(ctx context.Context, targets []scanning.ScanTarget) *scanning.ScanReport {
	report := scanning.NewScanReport()
	if len(targets) == 0 {
		return report
	}

	ctx, span := s.tracer.Start(ctx, "scanner.scan_batch",
		trace.WithAttributes(attribute.Int("num_targets", len(targets))))
	defer span.End()

	s.metrics.AddFilesDiscovered(len(targets))
	s.logger.Info(ctx, "Starting scan", "num_targets", len(targets), "num_workers", s.workers, "timeout", s.timeout.String())

	scanCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	taskCh := make(chan scanning.ScanTarget)
	// Buffered to the batch size so a worker finishing after the deadline
	// never blocks on a collector that already stopped listening.
	resultCh := make(chan scanning.FileFindings, len(targets))

	var workerWg sync.WaitGroup
	workerWg.Add(s.workers)
	for i := 0; i < s.workers; i++ {
		go func(workerID int) {
			defer workerWg.Done()
			s.worker(scanCtx, workerID, taskCh, resultCh)
		}(i)
	}

	go func() {
		defer close(taskCh)
		for _, target := range targets {
			select {
			case taskCh <- target:
			case <-scanCtx.Done():
				return
			}
		}
	}()

	go func() {
		workerWg.Wait()
		close(resultCh)
	}()

	completed := 0
collect:
	for {
		select {
		case findings, ok := <-resultCh:
			if !ok {
				break collect
			}
			completed++
			s.recordFindings(scanCtx, report, findings)
		case <-scanCtx.Done():
			abandoned := len(targets) - completed
			s.metrics.AddFilesAbandoned(abandoned)
			s.logger.Warn(ctx, "Scan budget elapsed, abandoning pending tasks",
				"completed", completed, "abandoned", abandoned)
			span.SetAttributes(attribute.Int("abandoned_tasks", abandoned))
			break collect
		}
	}

	span.SetAttributes(
		attribute.Int("completed_tasks", completed),
		attribute.Int("flagged_files", report.Len()),
	)
	s.logger.Info(ctx, "Scan complete", "completed", completed, "flagged", report.Len())
	return report
}

// recordFindings merges one terminal task result into the report. This runs
// on the single collector goroutine, which is the report's only writer.
func (s *Scanner) recordFindings(ctx context.Context, report *scanning.ScanReport, findings scanning.FileFindings) {
	if findings.Status == scanning.StatusFailed {
		s.metrics.IncExtractionFailures()
	}
	if findings.Flagged() {
		s.metrics.IncFilesFlagged()
		s.logger.Info(ctx, "Flagged file", "file_path", findings.Path,
			"ssn_found", findings.SSNFound, "credit_card_found", findings.CreditCardFound)
	}
	report.Add(findings)
}

// worker processes targets from the task channel until it is closed or the
// scan context expires.
func (s *Scanner) worker(ctx context.Context, id int, taskCh <-chan scanning.ScanTarget, resultCh chan<- scanning.FileFindings) {
	s.logger.Debug(ctx, "Worker started", "worker_id", id)
	for {
		select {
		case target, ok := <-taskCh:
			if !ok {
				s.logger.Debug(ctx, "Worker shutting down", "worker_id", id, "reason", "task_channel_closed")
				return
			}
			resultCh <- s.processTarget(ctx, target)
		case <-ctx.Done():
			s.logger.Debug(ctx, "Worker shutting down", "worker_id", id, "reason", "context_done")
			return
		}
	}
}

// processTarget runs extraction and detection for a single file. Any panic
// from the extraction-or-detection step is recovered here at the task
// boundary and downgraded to failed findings, so one bad file can never crash
// the pool or affect sibling tasks.
func (s *Scanner) processTarget(ctx context.Context, target scanning.ScanTarget) (findings scanning.FileFindings) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error(ctx, "Recovered panic while scanning file", "file_path", target.Path(), "panic", r)
			findings = scanning.FailedFindings(target.Path())
		}
	}()

	_ = s.metrics.TrackScanTask(func() error {
		findings = s.scanFile(ctx, target)
		return nil
	})
	return findings
}

func (s *Scanner) scanFile(ctx context.Context, target scanning.ScanTarget) scanning.FileFindings {
	ctx, span := s.tracer.Start(ctx, "scanner.scan_file",
		trace.WithAttributes(attribute.String("file_path", target.Path())))
	defer span.End()

	outcome := s.extractor.Extract(ctx, target.Path())
	span.AddEvent("extraction_complete")

	findings := scanning.FileFindings{Path: target.Path(), Status: outcome.Status}
	if outcome.Status != scanning.StatusExtracted {
		return findings
	}

	findings.SSNFound = s.detectors.DetectSSN(outcome.Text)
	findings.CreditCardFound = s.detectors.DetectCreditCard(outcome.Text)
	span.AddEvent("detection_complete")

	return findings
}
