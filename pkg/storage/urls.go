// Package storage resolves stored object paths to publicly servable URLs.
package storage

import "strings"

// URLResolver maps object-storage paths to public URLs. Uploads live
// elsewhere; read paths only need the base-URL join.
type URLResolver struct {
	baseURL string
}

// NewURLResolver creates a resolver for the given public base URL.
func NewURLResolver(baseURL string) *URLResolver {
	return &URLResolver{baseURL: strings.TrimRight(baseURL, "/")}
}

// PathToURL resolves a stored path to its public URL. Empty paths resolve to
// the empty string so callers can render missing images as absent.
func (r *URLResolver) PathToURL(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return r.baseURL + "/" + strings.TrimLeft(path, "/")
}
