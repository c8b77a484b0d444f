// Package session owns the state of one user's extraction workflow: the
// selected file, its preview, and the outcome of the latest attempt.
//
// A Session replaces the browser's ambient globals with one explicit
// controller. It allows at most one extraction in flight; a second
// Submit while one is outstanding is rejected without issuing a request.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jackzampolin/markscan/internal/extract"
	"github.com/jackzampolin/markscan/internal/intake"
	"github.com/jackzampolin/markscan/internal/render"
)

var (
	// ErrNoSelection is returned by Submit and Preview when no file is selected.
	ErrNoSelection = errors.New("no file selected")

	// ErrBusy is returned by Submit while another extraction is in flight.
	ErrBusy = errors.New("extraction already in progress")

	// ErrSelectionChanged is returned by Preview when a new file was
	// selected while the previous one was being read.
	ErrSelectionChanged = errors.New("selection changed during preview")
)

// State is the submission state of a session.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
)

// Submitter performs one extraction round trip.
type Submitter interface {
	Submit(ctx context.Context, f *intake.File) (*extract.Response, error)
}

// Outcome is the displayed result of one completed attempt: either a
// rendered result or an error, never both.
type Outcome struct {
	AttemptID string            `json:"attempt_id" yaml:"attempt_id"`
	File      string            `json:"file" yaml:"file"`
	Raw       json.RawMessage   `json:"raw,omitempty" yaml:"-"`
	Result    *extract.Result   `json:"-" yaml:"-"`
	View      *render.ViewModel `json:"view,omitempty" yaml:"view,omitempty"`
	Err       error             `json:"-" yaml:"-"`
}

// Failed reports whether the attempt ended in an error.
func (o *Outcome) Failed() bool {
	return o.Err != nil
}

// Text is the one-line error or the plain text summary.
func (o *Outcome) Text() string {
	if o.Err != nil {
		return render.ErrorText(o.Err)
	}
	return render.Text(o.View)
}

// Session is safe for concurrent use.
type Session struct {
	logger *slog.Logger

	mu         sync.Mutex
	client     Submitter
	selection  *intake.File
	generation uint64
	preview    *intake.Preview
	outcome    *Outcome

	submitting atomic.Bool
}

// New creates a session that submits through client.
func New(client Submitter, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{client: client, logger: logger}
}

// SetClient swaps the extraction client, e.g. after a config reload.
// An in-flight attempt keeps the client it started with.
func (s *Session) SetClient(client Submitter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.client = client
}

// Select makes f the current selection. The previous preview and outcome
// are discarded, including the outcome of an attempt still in flight.
// Select(nil) clears the selection.
func (s *Session) Select(f *intake.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectLocked(f)
}

func (s *Session) selectLocked(f *intake.File) {
	s.selection = f
	s.generation++
	s.preview = nil
	s.outcome = nil

	if f == nil {
		s.logger.Debug("selection cleared")
		return
	}
	s.logger.Debug("file selected", "file", f.Name, "content_type", f.ContentType, "kind", f.Kind)
}

// Selection returns the current selection, or nil.
func (s *Session) Selection() *intake.File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// CanSubmit reports whether the submit action is enabled: a file is
// selected and no extraction is in flight.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection != nil && !s.submitting.Load()
}

// State returns the current submission state.
func (s *Session) State() State {
	if s.submitting.Load() {
		return StateSubmitting
	}
	return StateIdle
}

// Preview reads the preview for the current selection and stores it.
// The read does not hold the session lock.
func (s *Session) Preview(ctx context.Context) (*intake.Preview, error) {
	s.mu.Lock()
	f, gen := s.selection, s.generation
	s.mu.Unlock()

	if f == nil {
		return nil, ErrNoSelection
	}

	p, err := intake.NewPreview(ctx, f)
	if err != nil {
		s.logger.Warn("preview failed", "file", f.Name, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return nil, ErrSelectionChanged
	}
	s.preview = p
	return p, nil
}

// CurrentPreview returns the stored preview, or nil.
func (s *Session) CurrentPreview() *intake.Preview {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview
}

// Outcome returns the latest completed attempt, or nil.
func (s *Session) Outcome() *Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Submit runs one extraction attempt for the current selection.
//
// It returns ErrNoSelection or ErrBusy without contacting the service.
// Otherwise it always returns an Outcome; extraction failures are
// carried in Outcome.Err rather than the error return. The outcome is
// only kept for display if the selection did not change meanwhile.
func (s *Session) Submit(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	f, client, gen := s.selection, s.client, s.generation
	if f == nil {
		s.mu.Unlock()
		return nil, ErrNoSelection
	}
	if !s.submitting.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	// Stale results are never shown alongside a new request.
	s.outcome = nil
	s.mu.Unlock()

	return s.run(ctx, client, f, gen), nil
}

// SubmitFile selects f and submits it as one step. While another attempt
// is in flight it returns ErrBusy and leaves the selection untouched.
func (s *Session) SubmitFile(ctx context.Context, f *intake.File) (*Outcome, error) {
	if f == nil {
		return nil, ErrNoSelection
	}

	s.mu.Lock()
	if !s.submitting.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.selectLocked(f)
	client, gen := s.client, s.generation
	s.mu.Unlock()

	return s.run(ctx, client, f, gen), nil
}

// run performs a reserved attempt and releases the reservation.
func (s *Session) run(ctx context.Context, client Submitter, f *intake.File, gen uint64) *Outcome {
	defer s.submitting.Store(false)

	out := &Outcome{
		AttemptID: uuid.NewString(),
		File:      f.Name,
	}
	log := s.logger.With("attempt_id", out.AttemptID, "file", f.Name)
	log.Info("extraction started")

	resp, err := client.Submit(ctx, f)
	if err != nil {
		out.Err = err
		log.Info("extraction attempt failed", "error", err)
	} else {
		out.Raw = resp.Raw
		out.Result = resp.Result
		out.View = render.Render(resp.Result)
		log.Info("extraction attempt succeeded", "subjects", len(out.View.Subjects))
	}

	s.mu.Lock()
	if s.generation == gen {
		s.outcome = out
	} else {
		log.Debug("selection changed during extraction, outcome not kept")
	}
	s.mu.Unlock()

	return out
}
