package endpoints

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"sync"

	"github.com/jackzampolin/markscan/internal/intake"
	"github.com/jackzampolin/markscan/internal/render"
	"github.com/jackzampolin/markscan/internal/session"
	"github.com/jackzampolin/markscan/web"
)

var templates = sync.OnceValues(web.Templates)

// pageData is everything index.html renders.
type pageData struct {
	ServerURL   string
	Busy        bool
	PreviewName string
	PreviewURL  template.URL
	Outcome     *session.Outcome
	RawJSON     string
	Summary     template.HTML
	SavedTo     string
}

func newPageData(sess *session.Session, serverURL string) (*pageData, error) {
	data := &pageData{
		ServerURL: serverURL,
		Busy:      sess.State() == session.StateSubmitting,
		Outcome:   sess.Outcome(),
	}

	if p := sess.CurrentPreview(); p != nil && (p.Placeholder || strings.HasPrefix(p.URL, "data:image/")) {
		data.PreviewName = p.Name
		// The MIME prefix comes from the uploaded part's Content-Type.
		// template.URL only lifts the data: scheme filter; the value is
		// still escaped for the src attribute.
		data.PreviewURL = template.URL(p.URL)
	}

	if out := data.Outcome; out != nil && !out.Failed() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, out.Raw, "", "  "); err != nil {
			data.RawJSON = string(out.Raw)
		} else {
			data.RawJSON = buf.String()
		}

		summary, err := render.HTML(out.View)
		if err != nil {
			return nil, err
		}
		data.Summary = template.HTML(summary)
	}

	return data, nil
}

func renderPage(w http.ResponseWriter, status int, data *pageData) {
	tmpl, err := templates()
	if err != nil {
		http.Error(w, "templates not available", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// wantsJSON reports whether the client asked for JSON instead of a page.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// OutcomeResponse is the JSON form of a completed attempt.
type OutcomeResponse struct {
	AttemptID string            `json:"attempt_id"`
	File      string            `json:"file"`
	Preview   *intake.Preview   `json:"preview,omitempty"`
	Raw       json.RawMessage   `json:"raw,omitempty"`
	View      *render.ViewModel `json:"view,omitempty"`
	Error     string            `json:"error,omitempty"`
	SavedTo   string            `json:"saved_to,omitempty"`
}

func newOutcomeResponse(out *session.Outcome, p *intake.Preview) OutcomeResponse {
	resp := OutcomeResponse{
		AttemptID: out.AttemptID,
		File:      out.File,
		Preview:   p,
		Raw:       out.Raw,
		View:      out.View,
	}
	if out.Failed() {
		resp.Error = out.Text()
	}
	return resp
}
