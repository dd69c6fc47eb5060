package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/service/auth"
)

// AdminHandler serves the session gate endpoints.
type AdminHandler struct {
	svc    *auth.Service
	logger *zap.Logger
}

// NewAdminHandler constructs the HTTP handler adapter for the admin gate.
func NewAdminHandler(svc *auth.Service, logger *zap.Logger) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login checks credentials and sets the session cookie.
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid request"})
		return
	}

	token, err := h.svc.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Admin not configured. Set ADMIN_USERNAME and ADMIN_PASSWORD."})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "Invalid credentials"})
	case err != nil:
		h.logger.Error("failed issuing admin session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "login failed"})
	default:
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(auth.CookieName, token, int(auth.SessionTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// Logout clears the session cookie.
func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Check reports whether the request carries a valid admin session.
func (h *AdminHandler) Check(c *gin.Context) {
	token, err := c.Cookie(auth.CookieName)
	if err != nil || !h.svc.Verify(token) {
		c.JSON(http.StatusOK, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
