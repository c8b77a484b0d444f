package api

import (
	"net/http"
)

// Endpoint defines an HTTP route served by the local UI.
type Endpoint interface {
	// Route returns the HTTP method, path, and handler for this endpoint.
	Route() (method, path string, handler http.HandlerFunc)
}
