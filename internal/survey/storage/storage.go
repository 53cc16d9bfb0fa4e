package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ============================================================
// Blob Store
// ============================================================

var ErrObjectNotFound = errors.New("object not found")

// Store keeps uploaded floor plans and photos addressed by object key.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// URL returns an address a browser can load the object from.
	URL(ctx context.Context, key string) (string, error)
}

type Options struct {
	Driver     string
	LocalRoot  string
	PublicURL  string
	S3Region   string
	S3Bucket   string
	S3Endpoint string
	S3Key      string
	S3Secret   string
	PresignTTL time.Duration
}

// New builds the store selected by opts.Driver ("local" or "s3").
func New(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", "local":
		return NewLocalStore(opts.LocalRoot, opts.PublicURL), nil
	case "s3":
		return NewS3Store(ctx, S3Options{
			Region:          opts.S3Region,
			Bucket:          opts.S3Bucket,
			Endpoint:        opts.S3Endpoint,
			AccessKeyID:     opts.S3Key,
			SecretAccessKey: opts.S3Secret,
			PresignTTL:      opts.PresignTTL,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %s", opts.Driver)
	}
}
