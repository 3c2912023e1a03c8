package dispatchhandlers

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vitalvas/relay/dispatch"
)

var (
	uuidV4Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	uuidV7Regex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-7[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name           string
		config         RequestIDConfig
		incomingHeader string
		wantHeader     string
		wantGenerated  bool
	}{
		{
			name:          "generates UUID v4 by default",
			config:        RequestIDConfig{},
			wantGenerated: true,
		},
		{
			name:           "does not trust incoming by default",
			config:         RequestIDConfig{},
			incomingHeader: "existing-id",
			wantGenerated:  true,
		},
		{
			name:           "trusts incoming when configured",
			config:         RequestIDConfig{TrustIncoming: true},
			incomingHeader: "existing-id",
			wantHeader:     "existing-id",
		},
		{
			name:          "generates when trust incoming but no header",
			config:        RequestIDConfig{TrustIncoming: true},
			wantGenerated: true,
		},
		{
			name:       "custom generate func",
			config:     RequestIDConfig{GenerateFunc: func(_ *http.Request) string { return "custom-id" }},
			wantHeader: "custom-id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := dispatch.NewApp()
			app.Use(RequestID(tt.config))

			var downstream string
			app.Use(func(w http.ResponseWriter, r *http.Request, _ dispatch.NextFunc) {
				downstream = RequestIDFromRequest(r)
				w.WriteHeader(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incomingHeader != "" {
				req.Header.Set("X-Request-ID", tt.incomingHeader)
			}
			app.ServeHTTP(w, req)

			got := w.Header().Get("X-Request-ID")
			if tt.wantGenerated {
				assert.Regexp(t, uuidV4Regex, got)
				assert.NotEqual(t, tt.incomingHeader, got)
			} else {
				assert.Equal(t, tt.wantHeader, got)
			}

			assert.Equal(t, got, downstream)
		})
	}

	t.Run("custom header name", func(t *testing.T) {
		app := dispatch.NewApp()
		app.Use(RequestID(RequestIDConfig{
			HeaderName:   "X-Trace-ID",
			GenerateFunc: func(_ *http.Request) string { return "trace-123" },
		}))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		app.ServeHTTP(w, req)

		assert.Equal(t, "trace-123", w.Header().Get("X-Trace-ID"))
	})
}

func TestGenerateUUID(t *testing.T) {
	t.Run("v4 matches the RFC 9562 layout", func(t *testing.T) {
		assert.Regexp(t, uuidV4Regex, GenerateUUIDv4(nil))
	})

	t.Run("v7 matches the RFC 9562 layout", func(t *testing.T) {
		assert.Regexp(t, uuidV7Regex, GenerateUUIDv7(nil))
	})

	t.Run("v4 values are unique", func(t *testing.T) {
		assert.NotEqual(t, GenerateUUIDv4(nil), GenerateUUIDv4(nil))
	})
}
