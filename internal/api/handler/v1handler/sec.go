package v1handler

import (
	"context"
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pricelens/internal/config"
	"pricelens/pkg/domain"
	"pricelens/pkg/serrors"
)

type ctxKey string

// UserIDKey is the context key under which the authenticated caller's ID is
// stored after bearer-token verification.
const UserIDKey ctxKey = "userID"

// GetUserIDFromContext returns the authenticated caller's ID, or the zero
// UserID when the request was not authenticated (verification disabled).
func GetUserIDFromContext(ctx context.Context) domain.UserID {
	if id, ok := ctx.Value(UserIDKey).(domain.UserID); ok {
		return id
	}

	return domain.UserID{}
}

// SecHandlerOptions configures bearer-token verification for v1 endpoints.
type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key tokens are verified
	// against. When empty, verification is disabled entirely.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler verifies RS256 bearer tokens and attaches the caller identity
// to the request context.
type SecHandler struct {
	key *rsa.PublicKey // nil disables verification
}

// NewSecHandler creates a SecHandler from the given options. An empty public
// key yields a handler that lets every request through.
func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || opts.PublicKey == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not parse RSA public key")
	}

	return &SecHandler{key: key}, nil
}

// HandleBearerAuth verifies the given bearer token and returns a context
// carrying the caller's user ID. The token must be signed with RS256 by the
// configured key, be within its validity window, and carry a UUID subject.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid subject")
	}
	uid, err := uuid.Parse(sub)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "subject is not a user ID")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(uid)), nil
}

// Wrap enforces bearer authentication on next. When verification is disabled
// the request passes through untouched.
func (s *SecHandler) Wrap(next http.Handler) http.Handler {
	if s.key == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(r.Context(), w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), token)
		if err != nil {
			writeError(r.Context(), w, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
