// Package dispatch implements an ordered middleware-dispatch engine for
// HTTP requests: handlers are registered against path prefixes and an
// incoming request is routed through the matching subset in registration
// order, with a separate track for error handlers.
//
// The engine implements the continuation-passing middleware model: every
// handler receives a next function that resumes traversal, optionally
// carrying an error. Signaling an error diverts the traversal to the
// nearest matching error handler and makes normal handlers invisible until
// the error is cleared or the request terminates.
//
// # Applications
//
// Create an application, register layers, and serve:
//
//	app := dispatch.NewApp()
//
//	app.Use(func(w http.ResponseWriter, r *http.Request, next dispatch.NextFunc) {
//	    w.Header().Set("X-Powered-By", "relay")
//	    next(nil)
//	})
//
//	app.UseAt("/hello", func(w http.ResponseWriter, r *http.Request, _ dispatch.NextFunc) {
//	    fmt.Fprintln(w, "hello")
//	})
//
//	http.ListenAndServe(":8080", app)
//
// # Mount Paths
//
// A layer's mount path is a prefix matched at path-segment boundaries:
// a layer at "/foo" sees requests for "/foo" and "/foo/bar" but not
// "/foobar". The root mount "/" (the default for Use, UseError and Mount)
// sees every request. Path syntax is limited to literal prefixes; there
// are no wildcards, parameters or method matchers.
//
// # Error Flow
//
// A handler signals an error by calling next with a non-nil error, or by
// panicking: a panic inside a handler is recovered at the invocation site
// and converted into the same signal, so the caller of Handle or ServeHTTP
// never observes it. While an error is pending, only error handlers
// registered via UseError or UseErrorAt run:
//
//	app.Use(func(w http.ResponseWriter, r *http.Request, next dispatch.NextFunc) {
//	    next(errors.New("boom"))
//	})
//
//	app.UseError(func(err error, w http.ResponseWriter, r *http.Request, next dispatch.NextFunc) {
//	    http.Error(w, err.Error(), http.StatusBadGateway)
//	})
//
// An error handler that calls next(nil) clears the pending error and
// resumes normal flow from the following layer. One that calls next(err)
// passes the error (same or replaced) further down the error track.
//
// # Mounting
//
// An application can be mounted inside another. Requests the inner
// application does not respond to, and errors none of its error handlers
// consume, bubble up to the parent's layers after the mount point:
//
//	api := dispatch.NewApp()
//	api.UseAt("/users", listUsers)
//
//	app := dispatch.NewApp()
//	app.MountAt("/api", api)
//	app.UseError(apiErrorPage)
//
// # Terminal Defaults
//
// When the outermost stack is exhausted and no layer has written a
// response, the engine responds 404 Not Found (RFC 9110 Section 15.5.5),
// or 500 Internal Server Error (RFC 9110 Section 15.6.1) when an
// unconsumed error is pending. Both defaults are overridable through the
// App's NotFoundHandler and ErrorHandler fields.
package dispatch
