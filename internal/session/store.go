package session

import (
	"context"
	"time"

	"github.com/jhojin7/my-cloudflare-oauth-app/internal/auth"
)

// TTL is how long a session lives. The cookie max-age mirrors it.
const TTL = 3600 * time.Second

// Store defines how sessions are stored and retrieved. The value of a session
// is the provider profile itself; expiry is enforced by the store, not by the
// caller. Get returns (nil, nil) for an unknown or expired id: an id that does
// not resolve is indistinguishable from "not logged in".
type Store interface {
	Create(ctx context.Context, sessionID string, profile auth.Profile, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*auth.Profile, error)
	Delete(ctx context.Context, sessionID string) error
}
