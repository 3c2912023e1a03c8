package dispatchhandlers

import (
	"net/http"

	"github.com/vitalvas/relay/dispatch"
)

// AccessLogConfig configures the Access Log handler behaviour.
type AccessLogConfig struct {
	// LogFunc is an optional callback invoked with the request and the
	// response status and body size observed when the downstream chain
	// returns. When nil, no logging is performed.
	LogFunc func(r *http.Request, status, size int)
}

// AccessLog returns a handler that records the response status and size
// after the downstream chain returns. The observation happens when the
// handler's own frame unwinds, so a downstream layer that completes the
// response asynchronously (after deferring next) is reported with the
// state written so far.
func AccessLog(cfg AccessLogConfig) dispatch.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, next dispatch.NextFunc) {
		rw := dispatch.NewResponseWriter(w)

		defer func() {
			if cfg.LogFunc != nil {
				cfg.LogFunc(r, rw.Status(), rw.Size())
			}
		}()

		next(nil)
	}
}
