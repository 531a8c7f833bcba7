package storage

import (
	"context"
	"io"
)

//go:generate mockgen -source=store.go -destination=mock/store.go -package=mock

// Store is the media boundary: save bytes, get back a stable URL. The core
// never touches the underlying object storage directly.
type Store interface {
	Save(ctx context.Context, reader io.Reader, size int64, objectName, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}
