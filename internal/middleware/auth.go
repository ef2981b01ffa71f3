package middleware

import (
	"context"
	"net/http"

	"github.com/jhojin7/my-cloudflare-oauth-app/internal/auth"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/session"
)

// unexported, collision-proof context key
type profileContextKeyType struct{}

var profileKey = profileContextKeyType{}

// ProfileFromContext extracts the authenticated user profile from context.
func ProfileFromContext(ctx context.Context) (*auth.Profile, bool) {
	p, ok := ctx.Value(profileKey).(*auth.Profile)
	return p, ok
}

type AuthMiddleware struct {
	Store session.Store
}

func NewAuthMiddleware(store session.Store) *AuthMiddleware {
	return &AuthMiddleware{Store: store}
}

// RequireAuth rejects requests without a live session. A cookie whose id no
// longer resolves in the store (expired or logged out) is treated the same as
// no cookie at all.
func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Extract session id from the cookie header
		sessionID, ok := session.IDFromRequest(r)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 2. Load session
		profile, err := a.Store.Get(r.Context(), sessionID)
		if err != nil || profile == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// 3. Attach profile to context
		ctx := context.WithValue(r.Context(), profileKey, profile)

		// 4. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
