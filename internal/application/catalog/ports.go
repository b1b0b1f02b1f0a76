// Package catalog contains the application services for the product
// catalog: feed imports, partner state and product search.
package catalog

import (
	"context"
	"time"

	"github.com/orders/backend/internal/infrastructure/worker"
)

// ObjectStorage stores product photo blobs downloaded during imports.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)
}

// ImportLock provides per-shop mutual exclusion for imports.
type ImportLock interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Queue accepts background jobs.
type Queue interface {
	Submit(job worker.Job) error
}
