package blobstore

import (
	"context"
	"io"
)

// Store persists product image blobs and hands back the public URL they will
// be served from.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader) (string, error)
}
