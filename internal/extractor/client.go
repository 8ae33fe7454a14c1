// Package extractor provides the client adapter for the external content
// extraction service. The service converts arbitrary file formats into plain
// text over a Tika-style HTTP interface; this package owns all translation of
// its responses and failures into the domain's extraction statuses.
package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/piisweep/internal/domain/scanning"
	"github.com/ahrav/piisweep/pkg/common"
	"github.com/ahrav/piisweep/pkg/common/logger"
)

// Outcome is the tri-state result of one extraction attempt. Exactly one of
// the three statuses is set; Text is only populated for StatusExtracted and
// Reason only for StatusFailed.
type Outcome struct {
	Status scanning.ExtractionStatus
	Text   string
	Reason string
}

// Config holds the extraction service connection settings. Request timeout
// and rate limits are explicit configuration rather than http defaults.
type Config struct {
	// BaseURL is the root of the extraction service, e.g. http://localhost:9998.
	BaseURL string

	// RequestTimeout bounds a single extraction round trip.
	RequestTimeout time.Duration

	// RequestsPerSecond and Burst throttle the worker fan-out against the
	// service.
	RequestsPerSecond float64
	Burst             int
}

// Client talks to the extraction service. It is safe for concurrent use by
// all scan workers.
type Client struct {
	baseURL string
	httpc   *http.Client
	limiter *common.RateLimiter

	logger *logger.Logger
	tracer trace.Tracer
}

// NewClient creates a Client for the extraction service at cfg.BaseURL.
func NewClient(cfg Config, log *logger.Logger, tracer trace.Tracer) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.RequestTimeout},
		limiter: common.NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
		logger:  log.With("component", "extractor_client"),
		tracer:  tracer,
	}
}

// WaitReady blocks until the extraction service answers its status endpoint,
// retrying with exponential backoff. It returns an error once retries are
// exhausted or the context is canceled. Scanning must not start against a
// service that is still booting, otherwise every file degrades to a failure.
func (c *Client) WaitReady(ctx context.Context) error {
	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.MaxElapsedTime = 1 * time.Minute
	expBackoff.InitialInterval = 1 * time.Second

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tika", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpc.Do(req)
		if err != nil {
			c.logger.Info(ctx, "Extraction service not ready, will retry", "error", err)
			return err
		}
		defer resp.Body.Close()
		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			err := fmt.Errorf("status endpoint returned %d", resp.StatusCode)
			c.logger.Info(ctx, "Extraction service not ready, will retry", "error", err)
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(expBackoff, ctx)); err != nil {
		return fmt.Errorf("extraction service never became ready: %w", err)
	}
	return nil
}

// Extract attempts content extraction for the file at path. It never returns
// an error: every failure mode, from an unreadable file to an unreachable
// service, is mapped to a failed Outcome so that one bad file cannot affect
// any other file's result.
func (c *Client) Extract(ctx context.Context, path string) Outcome {
	ctx, span := c.tracer.Start(ctx, "extractor_client.extract",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("file_path", path)),
	)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		return c.failed(ctx, span, path, fmt.Errorf("rate limiter wait: %w", err))
	}

	f, err := os.Open(path)
	if err != nil {
		return c.failed(ctx, span, path, fmt.Errorf("opening file: %w", err))
	}
	defer f.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/tika", f)
	if err != nil {
		return c.failed(ctx, span, path, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return c.failed(ctx, span, path, fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("response_status_code", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		return Outcome{Status: scanning.StatusNoContent}
	case resp.StatusCode != http.StatusOK:
		return c.failed(ctx, span, path, fmt.Errorf("received non-success response code %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.failed(ctx, span, path, fmt.Errorf("reading response body: %w", err))
	}

	// A 200 with a blank body still means there is nothing to scan.
	text := string(body)
	if strings.TrimSpace(text) == "" {
		return Outcome{Status: scanning.StatusNoContent}
	}

	return Outcome{Status: scanning.StatusExtracted, Text: text}
}

func (c *Client) failed(ctx context.Context, span trace.Span, path string, err error) Outcome {
	span.RecordError(err)
	c.logger.Debug(ctx, "Extraction failed", "file_path", path, "error", err)
	return Outcome{Status: scanning.StatusFailed, Reason: err.Error()}
}
