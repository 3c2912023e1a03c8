package dispatch

import (
	"path"
	"strings"
)

// cleanPath returns the canonical path for p, eliminating . and .. elements
// per RFC 3986 Section 5.2.4 (remove dot segments).
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	if p[0] != '/' {
		p = "/" + p
	}
	np := path.Clean(p)
	// path.Clean removes trailing slash except for root;
	// put the trailing slash back if necessary.
	if p[len(p)-1] == '/' && np != "/" {
		np += "/"
	}
	return np
}

// normalizeMountPath canonicalizes a registration path: empty becomes the
// root mount, dot segments are removed, and a trailing slash is trimmed
// (except for root) so that boundary matching works on whole segments.
func normalizeMountPath(p string) string {
	if p == "" {
		return "/"
	}

	np := cleanPath(p)
	if np != "/" {
		np = strings.TrimSuffix(np, "/")
	}

	return np
}
