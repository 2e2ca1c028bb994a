package storage

import (
	"context"
	"io"
)

type PutInput struct {
	// Folder scopes the key by what the file is for ("products",
	// "shippers"); empty lands at the root of the upload area.
	Folder      string
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}
