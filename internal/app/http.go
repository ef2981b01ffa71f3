package app

import (
	"context"

	"github.com/jhojin7/my-cloudflare-oauth-app/internal/auth/handler"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/auth/provider/google"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/config"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/middleware"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/session"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/todo"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	todoStore := todo.NewRedisStore(infra.Redis.Client)

	googleProvider, err := google.New(ctx, google.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		AuthURL:      cfg.GoogleAuthURL,
		TokenURL:     cfg.GoogleTokenURL,
		UserInfoURL:  cfg.GoogleUserInfoURL,
	})
	if err != nil {
		return nil, nil, err
	}

	authHandler := handler.NewHandler(googleProvider, sessionStore)
	todoHandler := todo.NewHandler(todoStore, sessionStore)

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	// matched path with an unregistered method answers 405, not 404
	router.HandleMethodNotAllowed = true

	// ----------------------------
	// Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)
	todoHandler.RegisterRoutes(router, middleware.GinRequireAuth(authMiddleware))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		return infra.Redis.Close()
	}, nil
}
