package handlers

import (
	"errors"
	"net/http"

	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// sessionCookieName holds the signed session value client-side.
	sessionCookieName = "todo_session"

	errMsgInvalidCredentials = "invalid credentials"
	errMsgAuthRequired       = "authentication required"
	errMsgInternal           = "internal error"
)

// Single, shared credentials payload for both register and login. The gin
// binding rejects obviously bad bodies before the service sees them; the
// service re-validates for its own callers.
type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled, true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// serviceError maps a service-layer failure to status + {error} JSON.
func (h *Handler) serviceError(c *gin.Context, err error, logKey string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMsgInvalidCredentials})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		if h.log != nil {
			h.log.Errorw(logKey, "err", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": errMsgInternal})
	}
}

// setSessionCookie issues a session for userID and attaches the cookie.
// Returns false if the session could not be established (already handled).
func (h *Handler) setSessionCookie(c *gin.Context, userID int) bool {
	value, err := h.services.Sessions.Issue(c.Request.Context(), userID)
	if err != nil {
		h.serviceError(c, err, "session_issue_failed")
		return false
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, value, int(service.SessionTTL.Seconds()), "/", "", h.secureCookies, true)
	return true
}

// clearSessionCookie instructs the client to drop the cookie.
func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookieName, "", -1, "/", "", h.secureCookies, true)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// @Summary      Register a new account
// @Description  Creates the account and establishes a session for it.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "id, email"
// @Failure      400   {object}  map[string]string
// @Router       /api/register [post]
func (h *Handler) register(c *gin.Context) {
	var input credentialsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Accounts.Register(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("register_failed", "email", input.Email, "err", err)
		}
		h.serviceError(c, err, "register_failed")
		return
	}
	if !h.setSessionCookie(c, u.ID) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": u.ID, "email": u.Email})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "id, email"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *Handler) login(c *gin.Context) {
	var input credentialsRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Accounts.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("login_failed", "email", input.Email, "err", err)
		}
		h.serviceError(c, err, "login_failed")
		return
	}
	if !h.setSessionCookie(c, u.ID) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": u.ID, "email": u.Email})
}

// @Summary      Log out
// @Description  Destroys the server-side session and clears the cookie. Idempotent.
// @Tags         auth
// @Success      204
// @Router       /api/logout [post]
func (h *Handler) logout(c *gin.Context) {
	if value, err := c.Cookie(sessionCookieName); err == nil {
		if derr := h.services.Sessions.Destroy(c.Request.Context(), value); derr != nil && h.log != nil {
			h.log.Errorw("logout_destroy_failed", "err", derr)
		}
	}
	h.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}
