package dispatch

import (
	"fmt"
	"net/http"
)

// NextFunc resumes traversal after the current layer. Calling it with a
// non-nil error signals the error and diverts traversal to the error
// track; calling it with nil continues normal flow and, from inside an
// error handler, clears the pending error. A NextFunc may be called at an
// arbitrary later time, including from another goroutine, but at most
// once per layer invocation.
type NextFunc func(err error)

// HandlerFunc is a normal middleware handler. It must eventually call
// next (with or without an error) or terminate the response; doing
// neither leaves the request hanging.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, next NextFunc)

// ErrorHandlerFunc is an error middleware handler, invoked with the
// pending error while one is in flight. It follows the same termination
// contract as HandlerFunc.
type ErrorHandlerFunc func(err error, w http.ResponseWriter, r *http.Request, next NextFunc)

// App is an ordered stack of layers plus the traversal algorithm that
// walks them. It implements the http.Handler interface, so it can be
// registered to serve requests:
//
//	app := dispatch.NewApp()
//	app.Use(handler)
//	http.ListenAndServe(":8080", app)
//
// Registration calls append to the stack and are not safe for use
// concurrently with request traffic; register everything during setup.
type App struct {
	// NotFoundHandler is called when the stack is exhausted with no
	// pending error and no layer has written a response. If nil, a
	// default 404 handler is used.
	// Corresponds to 404 Not Found per RFC 9110 Section 15.5.5.
	NotFoundHandler http.Handler

	// ErrorHandler is called when the stack is exhausted with a pending
	// error no error layer consumed. If nil, a default handler writes
	// 500 Internal Server Error (RFC 9110 Section 15.6.1) with the
	// error text.
	ErrorHandler func(err error, w http.ResponseWriter, r *http.Request)

	stack []*Layer
}

// NewApp returns a new application with an empty layer stack.
func NewApp() *App {
	return &App{}
}

// Use registers a normal handler mounted at "/", so it sees every
// request. Returns the App for chaining.
func (a *App) Use(h HandlerFunc) *App {
	return a.UseAt("/", h)
}

// UseAt registers a normal handler mounted at the given path prefix.
// Returns the App for chaining.
func (a *App) UseAt(path string, h HandlerFunc) *App {
	a.stack = append(a.stack, newHandlerLayer(path, h))
	return a
}

// UseError registers an error handler mounted at "/". Error handlers run
// only while an error is pending. Returns the App for chaining.
func (a *App) UseError(h ErrorHandlerFunc) *App {
	return a.UseErrorAt("/", h)
}

// UseErrorAt registers an error handler mounted at the given path prefix.
// Returns the App for chaining.
func (a *App) UseErrorAt(path string, h ErrorHandlerFunc) *App {
	a.stack = append(a.stack, newErrorHandlerLayer(path, h))
	return a
}

// Mount registers a sub-application at "/". Returns the App for chaining.
func (a *App) Mount(sub *App) *App {
	return a.MountAt("/", sub)
}

// MountAt registers a sub-application at the given path prefix. The
// parent's traversal becomes the sub-application's terminal continuation:
// requests the sub-application does not respond to, and errors its own
// error layers leave unconsumed, continue in the parent's stack from the
// layer after the mount point.
func (a *App) MountAt(path string, sub *App) *App {
	a.stack = append(a.stack, newAppLayer(path, sub))
	return a
}

// Layers returns a copy of the registered layer stack, in registration
// order.
func (a *App) Layers() []*Layer {
	layers := make([]*Layer, len(a.stack))
	copy(layers, a.stack)
	return layers
}

// Handle routes the request through the layer stack. done is the terminal
// continuation invoked when the stack is exhausted; it receives the
// pending error, or nil when traversal ended in normal flow. Mounted
// applications are driven through Handle with the parent's traversal as
// done.
func (a *App) Handle(w http.ResponseWriter, r *http.Request, done NextFunc) {
	t := &traversal{
		stack: a.stack,
		w:     w,
		r:     r,
		done:  done,
	}

	t.next(nil)
}

// ServeHTTP dispatches the request through the stack with the terminal
// defaults installed. Implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Normalize the request path per RFC 3986 Section 5.2.4
	// (removing dot segments).
	if cleaned := cleanPath(r.URL.Path); cleaned != r.URL.Path {
		u := *r.URL
		u.Path = cleaned
		u.RawPath = ""
		r = r.Clone(r.Context())
		r.URL = &u
	}

	rw := NewResponseWriter(w)

	a.Handle(rw, r, func(err error) {
		if rw.Written() {
			return
		}

		if err != nil {
			a.serveError(err, rw, r)
			return
		}

		a.serveNotFound(rw, r)
	})
}

func (a *App) serveNotFound(w http.ResponseWriter, r *http.Request) {
	if a.NotFoundHandler != nil {
		a.NotFoundHandler.ServeHTTP(w, r)
		return
	}

	http.NotFound(w, r)
}

func (a *App) serveError(err error, w http.ResponseWriter, r *http.Request) {
	if a.ErrorHandler != nil {
		a.ErrorHandler(err, w, r)
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError)+": "+err.Error(), http.StatusInternalServerError)
}

// traversal is the per-request cursor over a layer stack. Exactly one
// request owns it; the index only increases, so every layer is considered
// at most once and traversal terminates in at most len(stack) steps. The
// record lives on the heap so next can be re-entered asynchronously after
// the handler that received it has returned.
type traversal struct {
	stack []*Layer
	w     http.ResponseWriter
	r     *http.Request
	done  NextFunc

	index int
	err   error
}

// next is the advance step: it records the signaled error (nil clears a
// pending one), then walks forward to the first layer that matches the
// request path and belongs to the current track, and invokes it. When the
// stack is exhausted it hands the pending error to done.
func (t *traversal) next(err error) {
	t.err = err

	for t.index < len(t.stack) {
		layer := t.stack[t.index]
		t.index++

		if layer.Match(t.r.URL.Path) == nil {
			continue
		}

		// While an error is pending only error layers are visible,
		// and vice versa. Mounted apps run on the normal track.
		if (t.err != nil) != (layer.kind == KindErrorHandler) {
			continue
		}

		t.invoke(layer)
		return
	}

	t.done(t.err)
}

// invoke runs the layer's handler, converting a panic during its
// synchronous execution into a signaled error at the call site. The
// caller of Handle never observes the panic.
func (t *traversal) invoke(layer *Layer) {
	defer func() {
		if v := recover(); v != nil {
			t.next(recoveredError(v))
		}
	}()

	switch layer.kind {
	case KindErrorHandler:
		layer.errorHandler(t.err, t.w, t.r, t.next)
	case KindApp:
		layer.app.Handle(t.w, t.r, t.next)
	default:
		layer.handler(t.w, t.r, t.next)
	}
}

// recoveredError converts a recovered panic value into the error signaled
// on the traversal. Error values pass through unchanged.
func recoveredError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}

	return fmt.Errorf("dispatch: handler panic: %v", v)
}
