package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/jackzampolin/markscan/internal/api"
	"github.com/jackzampolin/markscan/internal/intake"
)

const (
	// Path is the extraction endpoint relative to the service base URL.
	Path = "/extract"

	// FileField is the multipart field carrying the upload.
	FileField = "file"

	// FallbackMessage is surfaced when the service gives no usable detail.
	FallbackMessage = "Extraction failed"
)

// ErrorKind classifies where an extraction attempt failed.
type ErrorKind string

const (
	// KindIntake means the selected file could not be read for upload.
	KindIntake ErrorKind = "intake"
	// KindTransport means no response was received.
	KindTransport ErrorKind = "transport"
	// KindService means the service answered with a non-2xx status.
	KindService ErrorKind = "service"
	// KindDecode means a 2xx body was not a valid extraction result.
	KindDecode ErrorKind = "decode"
)

// Error is the single error type returned by Submit. Message is what the
// user sees.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Response is a successful extraction.
type Response struct {
	Result *Result
	Raw    json.RawMessage
}

// ServiceStatus is the service's root status payload.
type ServiceStatus struct {
	Status  string `json:"status" yaml:"status"`
	Message string `json:"message" yaml:"message"`
}

// Client submits documents to the extraction service.
type Client struct {
	api    *api.Client
	logger *slog.Logger
}

// NewClient wraps an API client for extraction calls.
func NewClient(c *api.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{api: c, logger: logger}
}

// Dial builds a client for the service at baseURL. A zero timeout means
// requests wait until ctx is done.
func Dial(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := api.NewClient(baseURL, api.WithTimeout(timeout), api.WithLogger(logger))
	return NewClient(c, logger)
}

// BaseURL returns the service URL this client talks to.
func (c *Client) BaseURL() string {
	return c.api.BaseURL()
}

// Submit uploads f and waits for the extraction result.
// Every failure is returned as *Error.
func (c *Client) Submit(ctx context.Context, f *intake.File) (*Response, error) {
	if f == nil {
		return nil, &Error{Kind: KindIntake, Message: "no file selected"}
	}

	data, err := readFile(f)
	if err != nil {
		readErr := &intake.ReadError{Name: f.Name, Err: err}
		return nil, &Error{Kind: KindIntake, Message: readErr.Error(), Err: readErr}
	}

	start := time.Now()
	c.logger.Info("submitting document",
		"file", f.Name,
		"content_type", f.ContentType,
		"size", f.Size,
		"url", c.api.BaseURL()+Path,
	)

	body, err := c.api.Upload(ctx, Path, api.FormFile{
		Field:       FileField,
		Filename:    f.Name,
		ContentType: f.ContentType,
		Body:        bytes.NewReader(data),
	})
	if err != nil {
		xerr := classify(err)
		c.logger.Warn("extraction failed",
			"file", f.Name,
			"kind", xerr.Kind,
			"status", xerr.StatusCode,
			"error", xerr.Message,
			"duration", time.Since(start),
		)
		return nil, xerr
	}

	result, err := Parse(body)
	if err != nil {
		c.logger.Warn("invalid extraction response", "file", f.Name, "error", err)
		return nil, &Error{Kind: KindDecode, Message: err.Error(), Err: err}
	}

	c.logger.Info("extraction complete",
		"file", f.Name,
		"subjects", len(result.Subjects),
		"average_confidence", result.AverageConfidence,
		"duration", time.Since(start),
	)

	return &Response{Result: result, Raw: json.RawMessage(body)}, nil
}

// readFile loads the whole selection so read failures surface as intake
// errors rather than as a broken upload.
func readFile(f *intake.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Status fetches the service's root status.
func (c *Client) Status(ctx context.Context) (*ServiceStatus, error) {
	var s ServiceStatus
	if err := c.api.Get(ctx, "/", &s); err != nil {
		var statusErr *api.StatusError
		var transportErr *api.TransportError
		if errors.As(err, &statusErr) || errors.As(err, &transportErr) {
			return nil, classify(err)
		}
		return nil, &Error{Kind: KindDecode, Message: err.Error(), Err: err}
	}
	return &s, nil
}

// classify maps transport-level errors onto user-facing extraction errors.
func classify(err error) *Error {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		msg := statusErr.Detail
		if msg == "" {
			msg = FallbackMessage
		}
		return &Error{Kind: KindService, StatusCode: statusErr.StatusCode, Message: msg, Err: err}
	}

	var transportErr *api.TransportError
	if errors.As(err, &transportErr) {
		return &Error{Kind: KindTransport, Message: transportErr.Error(), Err: err}
	}

	return &Error{Kind: KindTransport, Message: err.Error(), Err: err}
}
