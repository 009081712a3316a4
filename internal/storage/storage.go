// Package storage defines the object storage collaborator used for company images.
package storage

import (
	"context"
	"io"
)

// File is an upload already classified by the HTTP layer.
type File struct {
	// Name is the client file name; only its extension is kept.
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Uploader stores f under folder and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder string, f File) (url string, err error)
}
