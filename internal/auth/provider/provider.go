package provider

import (
	"context"

	"github.com/jhojin7/my-cloudflare-oauth-app/internal/auth"
)

// OAuthProvider defines the contract the external identity provider
// must implement. Implementations return profile facts only and
// must not perform session management.
type OAuthProvider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the OAuth authorization URL the browser is
	// redirected to.
	AuthCodeURL() string

	// ExchangeCode redeems the authorization code for an access token and
	// fetches the user profile with it. No auth decisions are made here.
	ExchangeCode(ctx context.Context, code string) (*auth.Profile, error)
}
