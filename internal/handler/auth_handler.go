package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/docemila/internal/auth"
	"github.com/yourusername/docemila/internal/metrics"
	"github.com/yourusername/docemila/internal/middleware"
	"github.com/yourusername/docemila/internal/model"
	"github.com/yourusername/docemila/pkg/errors"
)

// AuthHandler serves the simulated login/register/logout routes.
type AuthHandler struct {
	svc     *auth.Service
	metrics *metrics.Metrics
}

// NewAuthHandler creates an auth handler over the given service.
func NewAuthHandler(svc *auth.Service, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{svc: svc, metrics: m}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	h.metrics.RecordLogin()

	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	h.metrics.RecordRegister()

	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Logout handles POST /api/auth/logout. Unknown tokens are a quiet no-op, so
// logout always succeeds from the client's point of view.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.svc.Logout(c.Request.Context(), strings.TrimSpace(token)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Me handles GET /api/auth/me. It sits behind RequireAuth, which has already
// resolved the session user into the request context.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// writeAuthError maps service errors onto HTTP statuses: validation failures
// carry the failing field back to the form, everything else is a 500.
func (h *AuthHandler) writeAuthError(c *gin.Context, err error) {
	var fieldErr *errors.FieldError
	if errors.As(err, &fieldErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": fieldErr.Message,
			"field": fieldErr.Field,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
