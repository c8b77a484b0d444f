// Package intake holds the user's selected document and builds local previews.
package intake

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Kind is the coarse classification used to decide how a file is previewed.
type Kind string

const (
	KindImage Kind = "image"
	KindOther Kind = "other"
)

// File is a selected document. The payload is opaque; it is only read
// when a preview is built or the file is uploaded.
type File struct {
	Name        string
	ContentType string
	Kind        Kind
	Size        int64

	open func() (io.ReadCloser, error)
}

// Open returns a new reader over the file's bytes.
func (f *File) Open() (io.ReadCloser, error) {
	return f.open()
}

// Open selects a file on disk. Nothing is rejected: any readable path
// becomes a selection. The content type is sniffed from the file header.
func Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	m, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect content type: %w", err)
	}

	name := filepath.Base(path)
	contentType := resolveContentType(m.String(), name)

	return &File{
		Name:        name,
		ContentType: contentType,
		Kind:        Classify(contentType),
		Size:        info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FromBytes selects an in-memory file, e.g. a browser upload.
// An empty or generic contentType is replaced by a sniffed one.
func FromBytes(name, contentType string, data []byte) *File {
	if contentType == "" || mediaType(contentType) == "application/octet-stream" {
		contentType = resolveContentType(mimetype.Detect(data).String(), name)
	}
	contentType = mediaType(contentType)

	return &File{
		Name:        name,
		ContentType: contentType,
		Kind:        Classify(contentType),
		Size:        int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// New selects a file backed by an arbitrary opener. The content type is
// taken as given.
func New(name, contentType string, size int64, open func() (io.ReadCloser, error)) *File {
	contentType = mediaType(contentType)
	return &File{
		Name:        name,
		ContentType: contentType,
		Kind:        Classify(contentType),
		Size:        size,
		open:        open,
	}
}

// Classify maps a MIME type onto the image/other split.
func Classify(contentType string) Kind {
	if strings.HasPrefix(mediaType(contentType), "image/") {
		return KindImage
	}
	return KindOther
}

// resolveContentType prefers the sniffed type and falls back to the
// extension when sniffing only found a generic binary.
func resolveContentType(sniffed, name string) string {
	ct := mediaType(sniffed)
	if ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return mediaType(byExt)
	}
	return "application/octet-stream"
}

// mediaType strips parameters such as charset.
func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.TrimSpace(strings.ToLower(mt))
}
