package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/notes-app/internal/authz"
	"github.com/yukikurage/notes-app/internal/constants"
	apierrors "github.com/yukikurage/notes-app/internal/errors"
	"github.com/yukikurage/notes-app/internal/metrics"
	"github.com/yukikurage/notes-app/internal/services"
	"github.com/yukikurage/notes-app/internal/session"
)

// LoadIdentity resolves the session's username, if any, into the gin context
// and the request context. It never aborts.
func LoadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if username, ok := session.Current(sessions.Default(c)); ok {
			c.Set(constants.ContextKeyUsername, username)
			c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), username))
		}
		c.Next()
	}
}

// GetUsername retrieves the current username from context
func GetUsername(c *gin.Context) (string, bool) {
	username, exists := c.Get(constants.ContextKeyUsername)
	if !exists {
		return "", false
	}
	s, ok := username.(string)
	return s, ok && s != ""
}

// RequireProfileOwner allows the request only when the session owns :username.
func RequireProfileOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := authz.AuthorizeOwner(c.Request.Context(), c.Param("username")); err != nil {
			Deny(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// Deny writes the response for a failed service call.
// Unauthenticated requests go to the login page; nothing internal is exposed.
func Deny(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, authz.ErrUnauthenticated):
		metrics.RecordAccessDenied("unauthenticated")
		s := sessions.Default(c)
		s.AddFlash(constants.FlashLoginRequired)
		if err := s.Save(); err != nil {
			slog.Warn("failed to save flash", "request_id", GetRequestID(c), "error", err)
		}
		c.Redirect(http.StatusFound, "/login")
	case errors.Is(err, authz.ErrForbidden):
		metrics.RecordAccessDenied("forbidden")
		apierrors.Forbidden(c, "")
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, apierrors.FieldErrors(verr.Fields))
	case errors.Is(err, services.ErrNoteNotFound):
		apierrors.NotFound(c, "Note not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	default:
		slog.Error("request failed", "request_id", GetRequestID(c), "path", c.Request.URL.Path, "error", err)
		apierrors.InternalError(c, "")
	}
}
