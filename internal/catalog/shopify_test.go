package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/config"
)

const productsJSON = `{"products":[
	{"id":42,"title":"Intro Welding — 2 Hours","tags":"beginner","body_html":"<p>Learn &amp; grow</p>","images":[{"src":"http://x/img.jpg"}]},
	{"id":43,"title":"Forge Basics","tags":"","body_html":null,"images":[]}
]}`

func newTestClient(baseURL, token string) *Client {
	c := New(config.ShopifyConfig{
		StoreDomain: "example.myshopify.com",
		APIVersion:  "2024-01",
		AccessToken: token,
		PageSize:    250,
		Timeout:     5 * time.Second,
	}, zerolog.Nop())
	c.BaseURL = baseURL
	return c
}

func TestNew(t *testing.T) {
	c := New(config.ShopifyConfig{StoreDomain: "mainfabric.myshopify.com", APIVersion: "2024-01"}, zerolog.Nop())

	if c.BaseURL != "https://mainfabric.myshopify.com" {
		t.Errorf("Unexpected BaseURL %q", c.BaseURL)
	}
	if c.PageSize != 250 {
		t.Errorf("Expected default page size 250, got %d", c.PageSize)
	}
	if c.HTTP == nil {
		t.Error("Expected HTTP client to be initialized")
	}
}

func TestListCollectionProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/admin/api/2024-01/collections/503854825767/products.json" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "250" {
			t.Errorf("Expected limit=250, got %s", r.URL.Query().Get("limit"))
		}
		if r.Header.Get("X-Shopify-Access-Token") != "shpat_test" {
			t.Errorf("Missing access token header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(productsJSON))
	}))
	defer srv.Close()

	products, err := newTestClient(srv.URL, "shpat_test").ListCollectionProducts(context.Background(), "503854825767")
	if err != nil {
		t.Fatalf("ListCollectionProducts failed: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("Expected 2 products, got %d", len(products))
	}
	if products[0].ID != 42 || products[0].Tags != "beginner" {
		t.Errorf("Unexpected first product: %+v", products[0])
	}
	if len(products[0].Images) != 1 || products[0].Images[0].Src != "http://x/img.jpg" {
		t.Errorf("Unexpected images: %+v", products[0].Images)
	}
	if products[1].BodyHTML != "" {
		t.Errorf("null body_html should decode to empty string, got %q", products[1].BodyHTML)
	}
}

func TestListCollectionProducts_MissingToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "").ListCollectionProducts(context.Background(), "1")
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("Expected ErrMissingToken, got %v", err)
	}
	if called {
		t.Error("Catalog must not be called without a token")
	}
}

func TestListCollectionProducts_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":"[API] Invalid API key or access token"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, "bad").ListCollectionProducts(context.Background(), "1")

	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("Expected *HTTPError, got %T %v", err, err)
	}
	if herr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", herr.StatusCode)
	}
	if !bytes.Contains([]byte(herr.Error()), []byte("Shopify API error: 401")) {
		t.Errorf("Unexpected error message %q", herr.Error())
	}
}

func TestListCollectionProducts_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL, "t").ListCollectionProducts(context.Background(), "1"); err == nil {
		t.Fatal("Expected parse error")
	}
}

func TestListCollectionProducts_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := newTestClient(url, "t").ListCollectionProducts(context.Background(), "1"); err == nil {
		t.Fatal("Expected connection error")
	}
}

func TestListCollectionProducts_CompressedBodies(t *testing.T) {
	tests := []struct {
		encoding string
		compress func([]byte) []byte
	}{
		{"br", func(b []byte) []byte {
			var buf bytes.Buffer
			w := brotli.NewWriter(&buf)
			w.Write(b)
			w.Close()
			return buf.Bytes()
		}},
		{"gzip", func(b []byte) []byte {
			var buf bytes.Buffer
			w := gzip.NewWriter(&buf)
			w.Write(b)
			w.Close()
			return buf.Bytes()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			payload := tt.compress([]byte(productsJSON))
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Encoding", tt.encoding)
				w.Write(payload)
			}))
			defer srv.Close()

			products, err := newTestClient(srv.URL, "t").ListCollectionProducts(context.Background(), "1")
			if err != nil {
				t.Fatalf("ListCollectionProducts failed: %v", err)
			}
			if len(products) != 2 {
				t.Errorf("Expected 2 products, got %d", len(products))
			}
		})
	}
}
