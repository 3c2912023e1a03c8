package dispatch

import (
	"strings"
)

// LayerKind identifies which traversal track a layer belongs to.
// The kind is fixed when the layer is constructed and never changes.
type LayerKind int

const (
	// KindHandler is a normal middleware layer. It runs only while no
	// error is pending.
	KindHandler LayerKind = iota

	// KindErrorHandler is an error middleware layer. It runs only while
	// an error is pending.
	KindErrorHandler

	// KindApp is a mounted sub-application. It participates in traversal
	// like a normal layer and delegates to the sub-application's stack.
	KindApp
)

// String returns a human-readable name for the layer kind.
func (k LayerKind) String() string {
	switch k {
	case KindHandler:
		return "handler"
	case KindErrorHandler:
		return "error-handler"
	case KindApp:
		return "app"
	default:
		return "unknown"
	}
}

// Layer pairs a mount path with a handler and a fixed kind. Layers are
// immutable after construction; matching and kind are evaluated
// independently during traversal.
type Layer struct {
	mountPath    string
	kind         LayerKind
	handler      HandlerFunc
	errorHandler ErrorHandlerFunc
	app          *App
}

// LayerMatch stores information about a matched layer.
type LayerMatch struct {
	// Path is the matched portion of the request path, equal to the
	// layer's mount path. The remainder of the request path is the
	// sub-path seen by a mounted application.
	Path string
}

func newHandlerLayer(path string, h HandlerFunc) *Layer {
	return &Layer{
		mountPath: normalizeMountPath(path),
		kind:      KindHandler,
		handler:   h,
	}
}

func newErrorHandlerLayer(path string, h ErrorHandlerFunc) *Layer {
	return &Layer{
		mountPath:    normalizeMountPath(path),
		kind:         KindErrorHandler,
		errorHandler: h,
	}
}

func newAppLayer(path string, app *App) *Layer {
	return &Layer{
		mountPath: normalizeMountPath(path),
		kind:      KindApp,
		app:       app,
	}
}

// MountPath returns the layer's normalized mount path.
func (l *Layer) MountPath() string {
	return l.mountPath
}

// Kind returns the layer's kind.
func (l *Layer) Kind() LayerKind {
	return l.kind
}

// Match matches the given request path against the layer's mount path.
// It returns nil when the path does not begin with the mount path at a
// path-segment boundary: a layer mounted at "/foo" matches "/foo" and
// "/foo/bar" but not "/foobar". The root mount "/" matches every path.
func (l *Layer) Match(path string) *LayerMatch {
	if l.mountPath == "/" {
		return &LayerMatch{Path: "/"}
	}

	if !strings.HasPrefix(path, l.mountPath) {
		return nil
	}

	// The prefix must be followed by end-of-string or a separator.
	if len(path) > len(l.mountPath) && path[len(l.mountPath)] != '/' {
		return nil
	}

	return &LayerMatch{Path: l.mountPath}
}
