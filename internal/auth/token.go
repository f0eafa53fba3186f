package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stock-watchlist-go/internal/config"
)

// ErrUnauthorized is returned when a request carries no valid access token.
var ErrUnauthorized = errors.New("unauthorized")

// Metadata is the profile data the auth provider attaches to an identity.
type Metadata struct {
	FullName string `json:"full_name,omitempty"`
}

// Claims are the access token claims issued by the auth provider.
type Claims struct {
	Email        string   `json:"email"`
	UserMetadata Metadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 access tokens signed with the provider's JWT secret.
type Verifier struct {
	secret []byte
	ttl    time.Duration
}

// NewVerifier creates a new Verifier.
func NewVerifier(cfg *config.Auth) *Verifier {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Verifier{secret: []byte(cfg.JWTSecret), ttl: ttl}
}

// Verify parses tokenStr and returns its claims. Expired tokens, tokens
// without an exp claim and tokens without an email are rejected.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: no JWT secret configured", ErrUnauthorized)
	}
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: missing access token", ErrUnauthorized)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	if strings.TrimSpace(claims.Email) == "" {
		return nil, fmt.Errorf("%w: token has no email claim", ErrUnauthorized)
	}
	return claims, nil
}

// IssueToken signs a token for email. It stands in for the auth provider in
// development and tests.
func (v *Verifier) IssueToken(email, fullName string) (string, error) {
	if len(v.secret) == 0 {
		return "", errors.New("no JWT secret configured")
	}
	now := time.Now()
	claims := &Claims{
		Email:        email,
		UserMetadata: Metadata{FullName: fullName},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(v.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(v.secret)
}
