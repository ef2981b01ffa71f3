package handler

import (
	"net/http"

	"github.com/jhojin7/my-cloudflare-oauth-app/internal/auth/provider"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/logger"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	provider     provider.OAuthProvider
	sessionStore session.Store
}

func NewHandler(
	p provider.OAuthProvider,
	sessionStore session.Store,
) *Handler {
	return &Handler{
		provider:     p,
		sessionStore: sessionStore,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/login", h.login)
	r.GET("/callback", h.callback)
	r.GET("/logout", h.logout)
	r.GET("/profile", h.profile)
}

// login redirects the browser to the provider's authorization endpoint.
// It requires no existing session.
func (h *Handler) login(c *gin.Context) {
	c.Redirect(http.StatusFound, h.provider.AuthCodeURL())
}

func (h *Handler) callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code", nil)
		c.String(http.StatusBadRequest, "Authorization code not found")
		return
	}

	profile, err := h.provider.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		logger.Error("oauth exchange failed", map[string]any{
			"provider": h.provider.Name(),
			"error":    err.Error(),
		})
		c.String(http.StatusInternalServerError, "Failed to obtain access token")
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		logger.Error("session id generation failed", map[string]any{
			"error": err.Error(),
		})
		c.String(http.StatusInternalServerError, "Failed to create session")
		return
	}

	if err := h.sessionStore.Create(
		c.Request.Context(),
		sessionID,
		*profile,
		session.TTL,
	); err != nil {
		logger.Error("session persist failed", map[string]any{
			"error": err.Error(),
		})
		c.String(http.StatusInternalServerError, "Failed to create session")
		return
	}

	session.SetCookie(c.Writer, sessionID, session.CookieOptions{
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("login success", map[string]any{
		"provider": h.provider.Name(),
		"user_id":  profile.ID,
	})

	renderPage(c, http.StatusOK, loginSuccessPage, nil)
}

// profile renders the user's profile page. Unauthenticated access gets an
// informational page, not an error status: pages and APIs signal "anonymous"
// differently.
func (h *Handler) profile(c *gin.Context) {
	sessionID, ok := session.IDFromRequest(c.Request)
	if !ok {
		renderPage(c, http.StatusOK, notLoggedInPage, nil)
		return
	}

	profile, err := h.sessionStore.Get(c.Request.Context(), sessionID)
	if err != nil {
		logger.Error("session lookup failed", map[string]any{
			"error": err.Error(),
		})
		c.String(http.StatusInternalServerError, "Failed to load session")
		return
	}
	if profile == nil {
		// expired or unknown id: same outcome as no cookie
		renderPage(c, http.StatusOK, sessionExpiredPage, nil)
		return
	}

	renderPage(c, http.StatusOK, profilePage, profile)
}

func (h *Handler) logout(c *gin.Context) {
	if sessionID, ok := session.IDFromRequest(c.Request); ok {
		// best-effort: deleting an absent session is fine
		_ = h.sessionStore.Delete(c.Request.Context(), sessionID)
		logger.Info("logout", map[string]any{
			"session_present": true,
		})
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		SameSite: http.SameSiteLaxMode,
	})

	renderPage(c, http.StatusOK, loggedOutPage, nil)
}
