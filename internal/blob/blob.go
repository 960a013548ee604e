// Package blob is the only entry point to artifact storage. Callers depend on
// Store; the drivers under internal/infra/blob stay private to this package.
package blob

import (
	"context"
	"fmt"

	"emissiondesk/internal/blob/core"
	"emissiondesk/internal/config"
	fsstore "emissiondesk/internal/infra/blob/fs"
	memstore "emissiondesk/internal/infra/blob/memory"
	s3store "emissiondesk/internal/infra/blob/s3"
)

type (
	Store            = core.Store
	Info             = core.Info
	PutOptions       = core.PutOptions
	SignedURLOptions = core.SignedURLOptions
	Driver           = core.Driver
)

const (
	DriverFilesystem = core.DriverFilesystem
	DriverS3         = core.DriverS3
	DriverMemory     = core.DriverMemory
)

var (
	ErrUnsupported = core.ErrUnsupported
	ErrExists      = core.ErrExists
	ErrNotExist    = core.ErrNotExist
)

// NewMemory returns an in-process store.
func NewMemory() Store { return memstore.New() }

// NewFilesystem returns a store rooted at root.
func NewFilesystem(root string) (Store, error) { return fsstore.New(root) }

// NewS3 returns a store backed by the configured bucket.
func NewS3(ctx context.Context, cfg config.S3) (Store, error) {
	return s3store.New(ctx, s3store.Config{
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		Endpoint:  cfg.Endpoint,
		PathStyle: cfg.PathStyle,
	})
}

// Open selects a driver from cfg. An empty driver means fs.
func Open(ctx context.Context, cfg config.Blob) (Store, error) {
	driver := Driver(cfg.Driver)
	if driver == "" {
		driver = DriverFilesystem
	}
	switch driver {
	case DriverFilesystem:
		return NewFilesystem(cfg.FSRoot)
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
