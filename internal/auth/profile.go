package auth

// Profile is the normalized user profile returned by the identity provider.
// It is stored verbatim as the session value; the provider user id doubles as
// the key for user-scoped data such as the todo list.
type Profile struct {
	ID      string `json:"id"`      // provider-scoped unique user identifier
	Name    string `json:"name"`    // display name
	Email   string `json:"email"`   // email returned by provider
	Picture string `json:"picture"` // avatar URL
}
