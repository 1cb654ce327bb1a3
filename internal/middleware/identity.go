package middleware

import (
	"context"
	"net/http"
	"strings"

	"tacops/internal/logs"
)

// The fronting auth layer authenticates callers and forwards who they
// are; this service only reads the forwarded headers. Handlers receive
// the result as a plain Identity value; nothing below this middleware
// touches ambient request state.

const (
	headerUserID   = "X-User-Id"
	headerUserName = "X-User-Name"
	headerUserRole = "X-User-Role"

	RoleGuest = "guest"
)

const identityKey ctxKey = "identity"

// Identity is the resolved caller. UserID is empty for anonymous
// requests; Role is never empty.
type Identity struct {
	UserID string
	Role   string
}

// UserMirror receives authenticated identities so the local users table
// stays in step with the identity provider.
type UserMirror interface {
	Ensure(ctx context.Context, id, name, role string) error
}

// CallerIdentity resolves the forwarded identity headers and, when a
// mirror is supplied, keeps the local reference copy of the user fresh.
func CallerIdentity(mirror UserMirror) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := Identity{
				UserID: strings.TrimSpace(r.Header.Get(headerUserID)),
				Role:   strings.TrimSpace(r.Header.Get(headerUserRole)),
			}
			if ident.Role == "" {
				ident.Role = RoleGuest
			}
			if ident.UserID != "" && mirror != nil {
				if err := mirror.Ensure(r.Context(), ident.UserID, r.Header.Get(headerUserName), ident.Role); err != nil {
					logs.Logger.Warnf("identity mirror for %s: %v", ident.UserID, err)
				}
			}
			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity returns the resolved caller; anonymous requests get the
// guest identity.
func GetIdentity(r *http.Request) Identity {
	if id, ok := r.Context().Value(identityKey).(Identity); ok {
		return id
	}
	return Identity{Role: RoleGuest}
}
