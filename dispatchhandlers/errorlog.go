package dispatchhandlers

import (
	"net/http"

	"github.com/vitalvas/relay/dispatch"
)

// ErrorLogConfig configures the Error Log handler behaviour.
type ErrorLogConfig struct {
	// LogFunc is an optional callback invoked with the request and the
	// pending error. When nil, no logging is performed.
	LogFunc func(r *http.Request, err error)
}

// ErrorLog returns an error handler that records the pending error and
// re-signals it, so later error handlers and the terminal default still
// run. Register it before the error handlers that consume errors.
func ErrorLog(cfg ErrorLogConfig) dispatch.ErrorHandlerFunc {
	return func(err error, _ http.ResponseWriter, r *http.Request, next dispatch.NextFunc) {
		if cfg.LogFunc != nil {
			cfg.LogFunc(r, err)
		}

		next(err)
	}
}
