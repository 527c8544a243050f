package models

import (
	"bytes"
	"io"
	"os"
)

// Summary is backend-supplied HTML describing an uploaded report.
type Summary string

// UploadResult is the success body of the report upload endpoint.
type UploadResult struct {
	Summary Summary `json:"summary"`
}

// PendingFile is a report chosen by the user and not yet uploaded.
// Only metadata is kept in memory; content is streamed from Path on Open.
type PendingFile struct {
	Name     string
	Path     string
	MIMEType string
	Size     int64

	// open overrides reading from Path. Tests use it to avoid the disk.
	open func() (io.ReadCloser, error)
}

// NewInMemoryFile builds a PendingFile whose content comes from data.
func NewInMemoryFile(name, mimeType string, data []byte) PendingFile {
	return PendingFile{
		Name:     name,
		MIMEType: mimeType,
		Size:     int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// Open returns the file content.
func (f PendingFile) Open() (io.ReadCloser, error) {
	if f.open != nil {
		return f.open()
	}
	return os.Open(f.Path)
}
