package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"stock-watchlist-go/internal/models"
)

// AccessTokenCookie is the cookie the auth provider's browser client sets.
const AccessTokenCookie = "sb-access-token"

// Session identifies the authenticated user of a request.
type Session struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// FromContext returns the session attached by the auth middleware.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

// TokenFromRequest returns the bearer token, falling back to the access token cookie.
func TokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// UserDirectory finds or creates the local record of an identity.
type UserDirectory interface {
	Ensure(ctx context.Context, email, name string) (*models.User, bool, error)
}

// Authenticator turns a request's access token into a Session.
type Authenticator struct {
	verifier *Verifier
	users    UserDirectory
	logger   *zap.Logger
}

// NewAuthenticator creates a new Authenticator.
func NewAuthenticator(verifier *Verifier, users UserDirectory, logger *zap.Logger) *Authenticator {
	return &Authenticator{verifier: verifier, users: users, logger: logger.Named("auth")}
}

// Authenticate verifies the request's token and makes sure a local user
// exists for it, creating one on first authentication.
func (a *Authenticator) Authenticate(r *http.Request) (Session, *models.User, error) {
	claims, err := a.verifier.Verify(TokenFromRequest(r))
	if err != nil {
		return Session{}, nil, err
	}

	user, created, err := a.users.Ensure(r.Context(), claims.Email, claims.UserMetadata.FullName)
	if err != nil {
		return Session{}, nil, fmt.Errorf("failed to resolve user %s: %w", claims.Email, err)
	}
	if created {
		a.logger.Info("Created user on first authentication", zap.String("email", user.Email), zap.Uint("user_id", user.ID))
	}

	return Session{UserID: user.ID, Email: user.Email}, user, nil
}
