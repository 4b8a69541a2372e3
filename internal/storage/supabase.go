package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/config"
)

// ErrNotConfigured is returned when a backend is missing its credentials
var ErrNotConfigured = errors.New("storage: backend not configured")

// Supabase stores objects through the Supabase Storage REST API
type Supabase struct {
	BaseURL    string
	ServiceKey string
	HTTP       *http.Client
	log        zerolog.Logger
}

// NewSupabase creates a Supabase Storage backend
func NewSupabase(cfg config.SupabaseStorageConfig, log zerolog.Logger) *Supabase {
	return &Supabase{
		BaseURL:    strings.TrimRight(cfg.URL, "/"),
		ServiceKey: cfg.ServiceKey,
		HTTP:       &http.Client{Timeout: 5 * time.Minute},
		log:        log.With().Str("component", "supabase-storage").Logger(),
	}
}

// Upload posts the object and returns its public URL. Existing objects are
// never overwritten.
func (s *Supabase) Upload(ctx context.Context, bucket, name, contentType string, r io.Reader) (string, error) {
	if s.BaseURL == "" || s.ServiceKey == "" {
		return "", ErrNotConfigured
	}

	objectPath := url.PathEscape(bucket) + "/" + url.PathEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/storage/v1/object/"+objectPath, r)
	if err != nil {
		return "", fmt.Errorf("storage: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.ServiceKey)
	req.Header.Set("apikey", s.ServiceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Cache-Control", "3600")
	req.Header.Set("x-upsert", "false")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage: upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage: upload %s/%s: status %d: %s", bucket, name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	publicURL := s.BaseURL + "/storage/v1/object/public/" + objectPath
	s.log.Info().Str("bucket", bucket).Str("name", name).Msg("Object uploaded")
	return publicURL, nil
}
