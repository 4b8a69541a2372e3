package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(cfg config.AuthConfig) *gin.Engine {
	r := gin.New()
	r.Use(NewMiddleware(cfg, zerolog.Nop()).Handler())
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": CurrentToken(c), "type": c.GetString(ContextKeyAuthType)})
	}
	r.GET("/health", handler)
	r.GET("/metrics", handler)
	r.POST("/v1/sync/shopify", handler)
	r.OPTIONS("/v1/sync/shopify", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func lowCostHash(t *testing.T, token string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(hash)
}

func TestMiddleware(t *testing.T) {
	hash := lowCostHash(t, "s3cret-admin-token")

	tests := []struct {
		name       string
		cfg        config.AuthConfig
		method     string
		path       string
		header     string
		wantStatus int
		wantType   string
	}{
		{"header mode without header", config.AuthConfig{Mode: config.AuthModeHeader}, "POST", "/v1/sync/shopify", "", 401, ""},
		{"header mode with any header", config.AuthConfig{Mode: config.AuthModeHeader}, "POST", "/v1/sync/shopify", "Bearer anything", 200, "header"},
		{"header mode non-bearer header", config.AuthConfig{Mode: config.AuthModeHeader}, "POST", "/v1/sync/shopify", "Basic dXNlcg==", 200, "header"},
		{"token mode valid", config.AuthConfig{Mode: config.AuthModeToken, TokenHash: hash}, "POST", "/v1/sync/shopify", "Bearer s3cret-admin-token", 200, "bearer"},
		{"token mode wrong token", config.AuthConfig{Mode: config.AuthModeToken, TokenHash: hash}, "POST", "/v1/sync/shopify", "Bearer nope", 401, ""},
		{"token mode not bearer", config.AuthConfig{Mode: config.AuthModeToken, TokenHash: hash}, "POST", "/v1/sync/shopify", "s3cret-admin-token", 401, ""},
		{"none mode", config.AuthConfig{Mode: config.AuthModeNone}, "POST", "/v1/sync/shopify", "", 200, "none"},
		{"health is public", config.AuthConfig{Mode: config.AuthModeToken, TokenHash: hash}, "GET", "/health", "", 200, ""},
		{"metrics is public", config.AuthConfig{Mode: config.AuthModeHeader}, "GET", "/metrics", "", 200, ""},
		{"preflight skips gate", config.AuthConfig{Mode: config.AuthModeHeader}, "OPTIONS", "/v1/sync/shopify", "", 204, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(tt.cfg)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}

			var body map[string]string
			if w.Code == http.StatusUnauthorized || w.Code == http.StatusOK {
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("Invalid JSON: %v", err)
				}
			}
			if w.Code == http.StatusUnauthorized && body["error"] == "" {
				t.Error("Expected error message")
			}
			if w.Code == http.StatusOK && body["type"] != tt.wantType {
				t.Errorf("Expected auth type %q, got %q", tt.wantType, body["type"])
			}
		})
	}
}

func TestMiddleware_MissingHeaderMessage(t *testing.T) {
	router := newTestRouter(config.AuthConfig{Mode: config.AuthModeHeader})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/v1/sync/shopify", nil))

	if w.Body.String() != `{"error":"Missing authorization header"}` {
		t.Errorf("Unexpected body %s", w.Body.String())
	}
}

func TestMiddleware_StoresBearerToken(t *testing.T) {
	router := newTestRouter(config.AuthConfig{Mode: config.AuthModeHeader})
	req := httptest.NewRequest("POST", "/v1/sync/shopify", nil)
	req.Header.Set("Authorization", "Bearer eyJhbGciOi")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["token"] != "eyJhbGciOi" {
		t.Errorf("Expected token in context, got %q", body["token"])
	}
}

func TestHashAndCheckToken(t *testing.T) {
	hash, err := HashToken("admin-token")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	if err := CheckToken("admin-token", []byte(hash)); err != nil {
		t.Errorf("CheckToken rejected the right token: %v", err)
	}
	if err := CheckToken("other", []byte(hash)); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
	if err := CheckToken("admin-token", []byte("not-a-hash")); err != ErrInvalidToken {
		t.Errorf("Expected ErrInvalidToken for malformed hash, got %v", err)
	}

	if _, err := HashToken(""); err == nil {
		t.Error("Expected error for empty token")
	}
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := HashToken(string(long)); err == nil {
		t.Error("Expected error for token over 72 bytes")
	}
}
