package intake

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// PlaceholderURL is shown for documents that cannot be previewed inline.
const PlaceholderURL = "https://upload.wikimedia.org/wikipedia/commons/8/87/PDF_file_icon.svg"

// ErrNotPDF is returned by PageCount for non-PDF selections.
var ErrNotPDF = errors.New("not a PDF")

// Preview is what the UI shows for the current selection.
type Preview struct {
	Name        string `json:"name" yaml:"name"`
	ContentType string `json:"content_type" yaml:"content_type"`
	Kind        Kind   `json:"kind" yaml:"kind"`
	URL         string `json:"url" yaml:"url"`
	Placeholder bool   `json:"placeholder" yaml:"placeholder"`
}

// ReadError reports a failure reading a selection's bytes.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// NewPreview builds the preview for f. Images are read and inlined as a
// data URL; anything else gets the placeholder without touching the payload.
func NewPreview(ctx context.Context, f *File) (*Preview, error) {
	p := &Preview{
		Name:        f.Name,
		ContentType: f.ContentType,
		Kind:        f.Kind,
	}

	if f.Kind != KindImage {
		p.URL = PlaceholderURL
		p.Placeholder = true
		return p, nil
	}

	data, err := readAll(ctx, f)
	if err != nil {
		return nil, err
	}

	p.URL = DataURL(f.ContentType, data)
	return p, nil
}

// DataURL encodes data as a base64 data URL.
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// PageCount returns the number of pages in a PDF selection.
func PageCount(ctx context.Context, f *File) (int, error) {
	if f.ContentType != "application/pdf" {
		return 0, ErrNotPDF
	}

	data, err := readAll(ctx, f)
	if err != nil {
		return 0, err
	}

	n, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return n, nil
}

func readAll(ctx context.Context, f *File) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Name: f.Name, Err: err}
	}

	rc, err := f.Open()
	if err != nil {
		return nil, &ReadError{Name: f.Name, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ReadError{Name: f.Name, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Name: f.Name, Err: err}
	}
	return data, nil
}
