package model

import (
	"context"
	"io"
)

// FeedStorage keeps published calendar feed snapshots.
type FeedStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
