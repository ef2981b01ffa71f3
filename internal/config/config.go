package config

import (
	"os"
)

// Google's public OAuth2 endpoints. Overridable through the environment so
// local setups can point the service at a stand-in provider.
const (
	defaultAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultTokenURL    = "https://oauth2.googleapis.com/token"
	defaultUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// Config holds all process configuration. It is built once at startup and
// passed down; nothing re-reads the environment after Load returns.
type Config struct {
	AppPort string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	GoogleAuthURL      string
	GoogleTokenURL     string
	GoogleUserInfoURL  string

	RedisAddr     string
	RedisPassword string
}

func Load() Config {

	cfg := Config{

		AppPort: getenv("APP_PORT", "8080"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		GoogleAuthURL:      getenv("GOOGLE_AUTH_URL", defaultAuthURL),
		GoogleTokenURL:     getenv("GOOGLE_TOKEN_URL", defaultTokenURL),
		GoogleUserInfoURL:  getenv("GOOGLE_USERINFO_URL", defaultUserInfoURL),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	return cfg

}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
