// Package auth gates the admin API. It checks the Authorization header and
// records the caller's token as the current user; nothing downstream depends
// on who the caller is.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/workshop-admin-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// Context keys set by the middleware
const (
	ContextKeyToken    = "auth_token"
	ContextKeyAuthType = "auth_type"
)

// AuthType indicates how the caller was let through
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeHeader AuthType = "header"
	AuthTypeBearer AuthType = "bearer"
)

var (
	ErrMissingHeader = errors.New("Missing authorization header")
	ErrInvalidToken  = errors.New("Invalid authorization token")
)

// Middleware authenticates API requests
type Middleware struct {
	mode        config.AuthMode
	tokenHash   []byte
	publicPaths map[string]bool
	log         zerolog.Logger
}

// NewMiddleware creates the auth gate for the configured mode
func NewMiddleware(cfg config.AuthConfig, log zerolog.Logger) *Middleware {
	return &Middleware{
		mode:      cfg.Mode,
		tokenHash: []byte(cfg.TokenHash),
		publicPaths: map[string]bool{
			"/health":  true,
			"/metrics": true,
		},
		log: log.With().Str("component", "auth").Logger(),
	}
}

// Handler returns a Gin middleware that authenticates requests
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || m.publicPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		authType, token, err := m.authenticate(c.GetHeader("Authorization"))
		if err != nil {
			m.log.Debug().
				Err(err).
				Str("path", c.Request.URL.Path).
				Str("client_ip", c.ClientIP()).
				Msg("Rejected request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextKeyAuthType, authType)
		c.Set(ContextKeyToken, token)
		c.Next()
	}
}

func (m *Middleware) authenticate(header string) (AuthType, string, error) {
	switch m.mode {
	case config.AuthModeNone:
		return AuthTypeNone, "", nil
	case config.AuthModeToken:
		token, ok := bearerToken(header)
		if !ok {
			return "", "", ErrMissingHeader
		}
		if err := CheckToken(token, m.tokenHash); err != nil {
			return "", "", err
		}
		return AuthTypeBearer, token, nil
	default:
		if strings.TrimSpace(header) == "" {
			return "", "", ErrMissingHeader
		}
		token, _ := bearerToken(header)
		return AuthTypeHeader, token, nil
	}
}

// CurrentToken returns the token the request was authenticated with
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextKeyToken)
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// HashToken creates a bcrypt hash of an admin token for AUTH_TOKEN_HASH
func HashToken(token string) (string, error) {
	if token == "" {
		return "", errors.New("token must not be empty")
	}
	// bcrypt has a 72-byte limit
	if len(token) > 72 {
		return "", errors.New("token exceeds maximum length of 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckToken compares a token with its bcrypt hash
func CheckToken(token string, hash []byte) error {
	// a malformed hash is reported the same as a mismatch
	if err := bcrypt.CompareHashAndPassword(hash, []byte(token)); err != nil {
		return ErrInvalidToken
	}
	return nil
}
