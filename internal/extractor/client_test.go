package extractor

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ahrav/piisweep/internal/domain/scanning"
	"github.com/ahrav/piisweep/pkg/common/logger"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL:           baseURL,
		RequestTimeout:    5 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             1000,
	}, logger.New(io.Discard, logger.LevelInfo, "test", nil), noop.NewTracerProvider().Tracer("test"))
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClient_Extract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		handler        http.HandlerFunc
		expectedStatus scanning.ExtractionStatus
		expectedText   string
	}{
		{
			name: "successful extraction",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				io.WriteString(w, "extracted text body")
			},
			expectedStatus: scanning.StatusExtracted,
			expectedText:   "extracted text body",
		},
		{
			name: "no content response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			expectedStatus: scanning.StatusNoContent,
		},
		{
			name: "success with blank body treated as no content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				io.WriteString(w, "   \n\t ")
			},
			expectedStatus: scanning.StatusNoContent,
		},
		{
			name: "unprocessable entity maps to failed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnprocessableEntity)
			},
			expectedStatus: scanning.StatusFailed,
		},
		{
			name: "server error maps to failed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedStatus: scanning.StatusFailed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := newTestClient(t, srv.URL)
			outcome := client.Extract(context.Background(), writeTempFile(t, "hello"))

			assert.Equal(t, tt.expectedStatus, outcome.Status)
			assert.Equal(t, tt.expectedText, outcome.Text)
		})
	}
}

func TestClient_ExtractRequestShape(t *testing.T) {
	t.Parallel()

	var gotMethod, gotPath, gotAccept, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		io.WriteString(w, "ok text")
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	outcome := client.Extract(context.Background(), writeTempFile(t, "raw file bytes"))

	require.Equal(t, scanning.StatusExtracted, outcome.Status)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/tika", gotPath)
	assert.Equal(t, "text/plain", gotAccept)
	assert.Equal(t, "raw file bytes", gotBody)
}

func TestClient_ExtractUnreadableFile(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server should not be called for an unreadable file")
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	outcome := client.Extract(context.Background(), filepath.Join(t.TempDir(), "does-not-exist.bin"))

	assert.Equal(t, scanning.StatusFailed, outcome.Status)
	assert.NotEmpty(t, outcome.Reason)
}

func TestClient_ExtractUnreachableService(t *testing.T) {
	t.Parallel()

	// Reserve a port and close it so the address refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := newTestClient(t, url)
	outcome := client.Extract(context.Background(), writeTempFile(t, "hello"))

	assert.Equal(t, scanning.StatusFailed, outcome.Status)
	assert.NotEmpty(t, outcome.Reason)
}

func TestClient_WaitReady(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, client.WaitReady(ctx))
	assert.GreaterOrEqual(t, calls, 3)
}

func TestClient_WaitReadyContextCanceled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, client.WaitReady(ctx))
}
