package todo

import (
	"net/http"

	"github.com/jhojin7/my-cloudflare-oauth-app/internal/logger"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/middleware"
	"github.com/jhojin7/my-cloudflare-oauth-app/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store        Store
	sessionStore session.Store
}

func NewHandler(store Store, sessionStore session.Store) *Handler {
	return &Handler{
		store:        store,
		sessionStore: sessionStore,
	}
}

// RegisterRoutes mounts the todos page and the JSON API. The API group is
// gated by the session middleware; the page handles anonymity itself so it
// can answer with an informational page instead of a 401.
func (h *Handler) RegisterRoutes(r *gin.Engine, requireAuth gin.HandlerFunc) {
	r.GET("/todos", h.page)

	api := r.Group("/api")
	api.Use(requireAuth)

	api.GET("/todos", h.list)
	api.POST("/todos", h.add)
	api.DELETE("/todos", h.clear)
}

func (h *Handler) page(c *gin.Context) {
	sessionID, ok := session.IDFromRequest(c.Request)
	if !ok {
		renderPage(c, notLoggedInPage, nil)
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
		renderPage(c, sessionExpiredPage, nil)
		return
	}

	renderPage(c, todosPage, profile)
}

func (h *Handler) list(c *gin.Context) {
	profile, ok := middleware.ProfileFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	items, err := h.store.List(c.Request.Context(), profile.ID)
	if err != nil {
		logger.Error("todo list failed", map[string]any{
			"user_id": profile.ID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load todos"})
		return
	}

	if items == nil {
		items = []Item{}
	}

	c.JSON(http.StatusOK, items)
}

type addRequest struct {
	Text string `json:"text" binding:"required"`
}

// add appends one entry to the user's list. The read-modify-write here is the
// documented last-write-wins race from the Store contract.
func (h *Handler) add(c *gin.Context) {
	profile, ok := middleware.ProfileFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	items, err := h.store.List(c.Request.Context(), profile.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load todos"})
		return
	}

	item := Item{Text: req.Text}
	items = append(items, item)

	if err := h.store.Put(c.Request.Context(), profile.ID, items); err != nil {
		logger.Error("todo put failed", map[string]any{
			"user_id": profile.ID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save todos"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *Handler) clear(c *gin.Context) {
	profile, ok := middleware.ProfileFromContext(c.Request.Context())
	if !ok {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := h.store.Clear(c.Request.Context(), profile.ID); err != nil {
		logger.Error("todo clear failed", map[string]any{
			"user_id": profile.ID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear todos"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
