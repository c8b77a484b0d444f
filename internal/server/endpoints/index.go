package endpoints

import (
	"net/http"

	"github.com/jackzampolin/markscan/internal/api"
	"github.com/jackzampolin/markscan/internal/svcctx"
)

// IndexEndpoint handles GET / and shows the upload form with the
// session's current preview and outcome.
type IndexEndpoint struct{}

var _ api.Endpoint = (*IndexEndpoint)(nil)

func (e *IndexEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/{$}", e.handler
}

func (e *IndexEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sess := svcctx.SessionFrom(r.Context())
	if sess == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	data, err := newPageData(sess, serverURL(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	renderPage(w, http.StatusOK, data)
}

// serverURL is the extraction service the UI currently submits to.
func serverURL(r *http.Request) string {
	if mgr := svcctx.ConfigManagerFrom(r.Context()); mgr != nil {
		return mgr.Get().ServerURL
	}
	return ""
}
