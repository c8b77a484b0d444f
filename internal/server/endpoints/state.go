package endpoints

import (
	"net/http"

	"github.com/jackzampolin/markscan/internal/api"
	"github.com/jackzampolin/markscan/internal/intake"
	"github.com/jackzampolin/markscan/internal/session"
	"github.com/jackzampolin/markscan/internal/svcctx"
)

// StateResponse describes the shared session.
type StateResponse struct {
	State     session.State    `json:"state"`
	CanSubmit bool             `json:"can_submit"`
	Selection string           `json:"selection,omitempty"`
	Preview   *intake.Preview  `json:"preview,omitempty"`
	Outcome   *OutcomeResponse `json:"outcome,omitempty"`
}

// StateEndpoint handles GET /ui/state.
type StateEndpoint struct{}

var _ api.Endpoint = (*StateEndpoint)(nil)

func (e *StateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ui/state", e.handler
}

func (e *StateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sess := svcctx.SessionFrom(r.Context())
	if sess == nil {
		writeError(w, http.StatusServiceUnavailable, "session not initialized")
		return
	}

	resp := StateResponse{
		State:     sess.State(),
		CanSubmit: sess.CanSubmit(),
		Preview:   sess.CurrentPreview(),
	}
	if f := sess.Selection(); f != nil {
		resp.Selection = f.Name
	}
	if out := sess.Outcome(); out != nil {
		o := newOutcomeResponse(out, nil)
		resp.Outcome = &o
	}

	writeJSON(w, http.StatusOK, resp)
}
