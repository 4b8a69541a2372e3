package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingToken means no Shopify admin token is configured
var ErrMissingToken = errors.New("SHOPIFY_ADMIN_API_TOKEN not configured")

// HTTPError carries the status and body of a non-2xx catalog response
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Shopify API error: %d %s", e.StatusCode, snippet(e.Body, 500))
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
