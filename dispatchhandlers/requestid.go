package dispatchhandlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/vitalvas/relay/dispatch"
)

// defaultRequestIDHeader is the header used when RequestIDConfig.HeaderName
// is empty.
const defaultRequestIDHeader = "X-Request-ID"

// RequestIDFromRequest returns the request ID set on the request by the
// RequestID handler. Returns an empty string if no ID is present.
func RequestIDFromRequest(r *http.Request) string {
	return r.Header.Get(defaultRequestIDHeader)
}

// RequestIDConfig configures the Request ID handler behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the current request, allowing ID generation based on
	// request context. Defaults to GenerateUUIDv4.
	GenerateFunc func(r *http.Request) string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestID returns a handler that generates or propagates a request ID
// header. The ID is set on both the request (for downstream layers) and
// the response (for the caller) before the chain resumes.
func RequestID(cfg RequestIDConfig) dispatch.HandlerFunc {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = defaultRequestIDHeader
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	return func(w http.ResponseWriter, r *http.Request, next dispatch.NextFunc) {
		id := ""
		if trustIncoming {
			id = r.Header.Get(headerName)
		}

		if id == "" {
			id = generate(r)
		}

		if id != "" {
			r.Header.Set(headerName, id)
			w.Header().Set(headerName, id)
		}

		next(nil)
	}
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4(_ *http.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7(_ *http.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
