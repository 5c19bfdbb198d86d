// Package guard resolves the caller identity from the Authorization header.
//
// The guard never rejects a request itself. A missing or invalid token leaves
// the request anonymous and the per-route policies decide what an anonymous
// caller may do. The username inside a valid token is trusted as is; the
// guard does not check that the user still exists.
package guard

import (
	"context"
	"net/http"
	"strings"

	authdomain "github.com/AlibekovAA/messenger/backend/internal/auth/domain"
	"github.com/AlibekovAA/messenger/backend/internal/common/logger"
)

type Verifier interface {
	Verify(token string) (string, error)
}

type contextKey string

const identityKey contextKey = "identity"

func Middleware(verifier Verifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			token, ok := bearerToken(raw)
			if !ok {
				log.WithFields(ctx, logger.Fields{
					"path":   r.URL.Path,
					"action": "auth_header_malformed",
				}).Warn("authorization header is not a bearer token")
				next.ServeHTTP(w, r)
				return
			}

			username, err := verifier.Verify(token)
			if err != nil {
				log.WithFields(ctx, logger.Fields{
					"path":   r.URL.Path,
					"action": "token_rejected",
				}).Warnf("token rejected: %v", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, authdomain.Identity{Username: username})))
		})
	}
}

func WithIdentity(ctx context.Context, id authdomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the anonymous identity when the guard resolved nothing.
func FromContext(ctx context.Context) authdomain.Identity {
	id, _ := ctx.Value(identityKey).(authdomain.Identity)
	return id
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
