// Package dispatchhandlers provides middleware handlers for the dispatch
// engine, written against its next-continuation contract: each handler
// either terminates the response or calls next, optionally with an error.
//
// # Request ID Middleware
//
// RequestID generates or propagates a request ID header on both the
// request and the response, so downstream handlers and the caller can
// correlate log entries.
//
//	app.Use(dispatchhandlers.RequestID(dispatchhandlers.RequestIDConfig{}))
//
// # Basic Auth Middleware
//
// BasicAuth implements HTTP Basic Authentication per RFC 7617.
// Credentials can be validated via a dynamic callback or a static map.
// Static credential comparison uses constant-time comparison to prevent
// timing attacks.
//
//	h, err := dispatchhandlers.BasicAuth(dispatchhandlers.BasicAuthConfig{
//	    Realm: "My App",
//	    Credentials: map[string]string{
//	        "admin": "secret",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.UseAt("/admin", h)
//
// # Security Headers Middleware
//
// SecurityHeaders sets common security response headers (nosniff,
// X-Frame-Options, Referrer-Policy, HSTS, CSP) before resuming the chain.
//
// # Logging Middleware
//
// The engine itself never logs. AccessLog and ErrorLog expose LogFunc
// callbacks so the application decides where records go:
//
//	app.Use(dispatchhandlers.AccessLog(dispatchhandlers.AccessLogConfig{
//	    LogFunc: func(r *http.Request, status, size int) {
//	        log.Printf("%s %s -> %d (%d bytes)", r.Method, r.URL.Path, status, size)
//	    },
//	}))
//
//	app.UseError(dispatchhandlers.ErrorLog(dispatchhandlers.ErrorLogConfig{
//	    LogFunc: func(r *http.Request, err error) {
//	        log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
//	    },
//	}))
//
// ErrorLog observes without consuming: it re-signals the error so later
// error handlers (or the terminal 500 default) still run.
package dispatchhandlers
