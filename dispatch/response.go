package dispatch

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// ResponseWriter extends http.ResponseWriter with methods to inspect the
// response. The engine uses it to decide whether a terminal default may
// still write; handlers may type-assert the writer they receive to
// observe the response state.
type ResponseWriter interface {
	http.ResponseWriter

	// Status returns the HTTP status code of the response.
	Status() int

	// Size returns the number of body bytes written to the response.
	Size() int

	// Written returns whether the response has been written to.
	Written() bool
}

// NewResponseWriter wraps w so that status, size and written state can be
// inspected. If w already implements ResponseWriter it is returned as is.
func NewResponseWriter(w http.ResponseWriter) ResponseWriter {
	if rw, ok := w.(ResponseWriter); ok {
		return rw
	}

	return &responseWriter{ResponseWriter: w}
}

// responseWriter wraps http.ResponseWriter and tracks response status and
// size. It implements http.Flusher, http.Hijacker, and http.Pusher by
// delegating to the underlying ResponseWriter when supported.
type responseWriter struct {
	http.ResponseWriter
	status  int
	size    int
	written bool
}

var (
	_ http.ResponseWriter = (*responseWriter)(nil)
	_ http.Flusher        = (*responseWriter)(nil)
	_ http.Hijacker       = (*responseWriter)(nil)
	_ http.Pusher         = (*responseWriter)(nil)
	_ ResponseWriter      = (*responseWriter)(nil)
)

// Status returns the HTTP status code of the response. If not yet
// written, it returns 200 OK.
func (rw *responseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}

	return rw.status
}

// Size returns the number of body bytes written to the response.
func (rw *responseWriter) Size() int {
	return rw.size
}

// Written returns whether the response has been written to.
func (rw *responseWriter) Written() bool {
	return rw.written
}

// WriteHeader sends an HTTP response header with the provided status
// code. Subsequent calls are ignored.
func (rw *responseWriter) WriteHeader(status int) {
	if rw.written {
		return
	}

	rw.status = status
	rw.written = true
	rw.ResponseWriter.WriteHeader(status)
}

// Write writes the data to the connection as part of an HTTP reply,
// sending a 200 OK header first when none has been sent.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}

	n, err := rw.ResponseWriter.Write(b)
	rw.size += n

	return n, err
}

// Flush sends any buffered data to the client when the underlying
// ResponseWriter supports it.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack lets the caller take over the connection when the underlying
// ResponseWriter supports it.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}

	return nil, nil, errors.New("dispatch: underlying ResponseWriter does not support hijacking")
}

// Push initiates an HTTP/2 server push when the underlying ResponseWriter
// supports it. Returns http.ErrNotSupported otherwise.
func (rw *responseWriter) Push(target string, opts *http.PushOptions) error {
	if p, ok := rw.ResponseWriter.(http.Pusher); ok {
		return p.Push(target, opts)
	}

	return http.ErrNotSupported
}
