// Package storage writes uploaded media to an object store and returns the
// public URL of the stored object.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/config"
)

// Store accepts an object and returns its publicly resolvable URL
type Store interface {
	Upload(ctx context.Context, bucket, name, contentType string, r io.Reader) (string, error)
}

// New returns the backend selected by cfg.Backend
func New(cfg config.StorageConfig, log zerolog.Logger) (Store, error) {
	switch cfg.Backend {
	case "supabase":
		return NewSupabase(cfg.Supabase, log), nil
	case "sftp":
		return NewSFTP(cfg.SFTP, log), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
