package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/config"
)

const defaultPageSize = 250

// Client reads products from the Shopify Admin REST API
type Client struct {
	BaseURL     string // https://{store}; overridable for tests
	APIVersion  string
	AccessToken string
	PageSize    int
	HTTP        *http.Client
	log         zerolog.Logger
}

// New creates a Shopify client from configuration
func New(cfg config.ShopifyConfig, log zerolog.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{
		BaseURL:     "https://" + cfg.StoreDomain,
		APIVersion:  cfg.APIVersion,
		AccessToken: cfg.AccessToken,
		PageSize:    pageSize,
		HTTP: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log.With().Str("component", "shopify").Logger(),
	}
}

// ListCollectionProducts fetches the products of a collection in a single page.
// Collections larger than PageSize are truncated; a full page is logged as a warning.
func (c *Client) ListCollectionProducts(ctx context.Context, collectionID string) ([]Product, error) {
	if c.AccessToken == "" {
		return nil, ErrMissingToken
	}

	u, err := url.Parse(fmt.Sprintf("%s/admin/api/%s/collections/%s/products.json",
		strings.TrimRight(c.BaseURL, "/"), c.APIVersion, url.PathEscape(collectionID)))
	if err != nil {
		return nil, fmt.Errorf("shopify: invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(c.PageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")

	c.log.Info().Str("collection_id", collectionID).Msg("Fetching workshops from Shopify")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("shopify: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("shopify: read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			Method:     req.Method,
			URL:        u.String(),
			StatusCode: resp.StatusCode,
			Body:       body,
		}
	}

	var out ListProductsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("shopify: json parse error: %w body=%s", err, snippet(body, 200))
	}

	c.log.Info().
		Int("products", len(out.Products)).
		Dur("duration", time.Since(start)).
		Msg("Found products in Shopify collection")

	if len(out.Products) >= c.PageSize {
		c.log.Warn().
			Int("page_size", c.PageSize).
			Str("collection_id", collectionID).
			Msg("Collection filled a whole page, products beyond it are not imported")
	}

	return out.Products, nil
}

// readBody reads the response, undoing the content encodings we asked for
func readBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		r = brotli.NewReader(resp.Body)
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}

	return io.ReadAll(r)
}
