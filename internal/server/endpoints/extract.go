package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jackzampolin/markscan/internal/api"
	"github.com/jackzampolin/markscan/internal/extract"
	"github.com/jackzampolin/markscan/internal/intake"
	"github.com/jackzampolin/markscan/internal/session"
	"github.com/jackzampolin/markscan/internal/svcctx"
)

// ExtractEndpoint handles POST /ui/extract with a multipart file upload.
// The upload becomes the session's selection and is submitted at once.
type ExtractEndpoint struct {
	// MaxMemory bounds the multipart form kept in memory. Larger
	// uploads spill to temporary files.
	MaxMemory int64
}

var _ api.Endpoint = (*ExtractEndpoint)(nil)

func (e *ExtractEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/ui/extract", e.handler
}

func (e *ExtractEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sess := svcctx.SessionFrom(r.Context())
	if sess == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}
	logger := svcctx.LoggerFrom(r.Context())

	// Early out before parsing the upload; SubmitFile makes the final call.
	if sess.State() == session.StateSubmitting {
		writeError(w, http.StatusConflict, session.ErrBusy.Error())
		return
	}

	maxMemory := e.MaxMemory
	if maxMemory <= 0 {
		maxMemory = 32 << 20
	}
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	fh := r.MultipartForm.File[extract.FileField]
	if len(fh) == 0 {
		writeError(w, http.StatusBadRequest, session.ErrNoSelection.Error())
		return
	}

	src, err := fh[0].Open()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to open uploaded file: %v", err))
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read uploaded file: %v", err))
		return
	}

	out, err := sess.SubmitFile(r.Context(), intake.FromBytes(fh[0].Filename, fh[0].Header.Get("Content-Type"), data))
	if errors.Is(err, session.ErrBusy) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	preview, err := sess.Preview(r.Context())
	if err != nil && logger != nil {
		logger.Warn("preview unavailable", "file", fh[0].Filename, "error", err)
	}

	var savedTo string
	if !out.Failed() && wantsSave(r) {
		if h := svcctx.HomeFrom(r.Context()); h != nil {
			savedTo, err = h.SaveResult(out.AttemptID, out.Raw)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if logger != nil {
				logger.Info("result saved", "attempt_id", out.AttemptID, "path", savedTo)
			}
		}
	}

	if wantsJSON(r) {
		status := http.StatusOK
		if out.Failed() {
			status = http.StatusBadGateway
		}
		resp := newOutcomeResponse(out, preview)
		resp.SavedTo = savedTo
		writeJSON(w, status, resp)
		return
	}

	page, err := newPageData(sess, serverURL(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	page.SavedTo = savedTo
	renderPage(w, http.StatusOK, page)
}

// wantsSave reports whether the form asked to keep the raw result under
// the home results directory.
func wantsSave(r *http.Request) bool {
	switch r.FormValue("save") {
	case "on", "true", "1":
		return true
	}
	return false
}
