package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrBadCredentials is returned when the submitted admin password is wrong.
	ErrBadCredentials = errors.New("incorrect password")
	// ErrInvalidToken is returned for missing, malformed or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Config carries the gate's credentials. PasswordHash (bcrypt) takes
// precedence over the plaintext Password when both are set.
type Config struct {
	Password     string
	PasswordHash string
	TokenSecret  string
	TokenTTL     time.Duration
}

// Gate guards the admin endpoints. A successful password check issues a
// short-lived HS256 token; admin requests carry it as a bearer token so
// the shared secret travels only once per session.
type Gate struct {
	password []byte
	hash     []byte
	ttl      time.Duration
	signer   *jwt.HSAlg
	verifier *jwt.HSAlg
	log      zerolog.Logger
}

// NewGate creates the admin gate. At least one of Password or
// PasswordHash and a token secret must be configured.
func NewGate(cfg Config, log zerolog.Logger) (*Gate, error) {
	if cfg.Password == "" && cfg.PasswordHash == "" {
		return nil, errors.New("no admin password configured")
	}
	if cfg.TokenSecret == "" {
		return nil, errors.New("no admin token secret configured")
	}

	key := []byte(cfg.TokenSecret)
	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create token signer: %w", err)
	}
	verifier, err := jwt.NewVerifierHS(jwt.HS256, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &Gate{
		password: []byte(cfg.Password),
		hash:     []byte(cfg.PasswordHash),
		ttl:      ttl,
		signer:   signer,
		verifier: verifier,
		log:      log,
	}, nil
}

// Login checks the submitted password and returns a signed session
// token on success, ErrBadCredentials otherwise.
func (g *Gate) Login(password string) (string, error) {
	if !g.check(password) {
		return "", ErrBadCredentials
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}

	token, err := jwt.NewBuilder(g.signer).Build(claims)
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}
	return token.String(), nil
}

func (g *Gate) check(password string) bool {
	if len(g.hash) > 0 {
		return bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare(g.password, []byte(password)) == 1
}

// Verify checks a raw token's signature and expiry.
func (g *Gate) Verify(raw string) error {
	token, err := jwt.Parse([]byte(raw), g.verifier)
	if err != nil {
		return ErrInvalidToken
	}

	var claims jwt.RegisteredClaims
	if err := json.Unmarshal(token.Claims(), &claims); err != nil {
		return ErrInvalidToken
	}
	if !claims.IsValidAt(time.Now()) {
		return ErrInvalidToken
	}
	return nil
}

// Middleware rejects requests without a valid bearer token.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || g.Verify(raw) != nil {
			g.log.Warn().Str("path", r.URL.Path).Msg("rejected admin request")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":"Unauthorized"}`)
			return
		}
		next.ServeHTTP(w, r)
	})
}
