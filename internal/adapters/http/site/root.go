// Package site serves the embedded league board page.
package site

import (
	"context"
	"net/http"
)

// Register attaches the embedded board page routes to mux. The page is
// static; it reads standings through the JSON API.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	// Serve the embedded board page at root /
	files := http.FileServer(FS())
	mux.Handle("/", files)
}
