package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/notes-app/internal/constants"
	"github.com/yukikurage/notes-app/internal/metrics"
	"github.com/yukikurage/notes-app/internal/session"
)

// RedirectTarget computes where a request goes when it is turned away.
type RedirectTarget func(c *gin.Context) string

// RequireForgeryToken rejects state-changing requests whose token does not match
// the session's. Rejection is silent: the request gets the route's usual redirect.
func RequireForgeryToken(target RedirectTarget) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.GetHeader(constants.ForgeryTokenHeader)
		if supplied == "" {
			supplied = c.PostForm(constants.ForgeryTokenField)
		}

		if err := session.ValidateForgeryToken(sessions.Default(c), supplied); err != nil {
			metrics.RecordAccessDenied("forgery")
			slog.Debug("forgery token rejected", "request_id", GetRequestID(c), "path", c.Request.URL.Path)
			c.Redirect(http.StatusFound, target(c))
			c.Abort()
			return
		}
		c.Next()
	}
}

// To redirects to a fixed location.
func To(location string) RedirectTarget {
	return func(*gin.Context) string {
		return location
	}
}

// ToOwnProfile redirects to the current user's profile, or to login when there is none.
func ToOwnProfile() RedirectTarget {
	return func(c *gin.Context) string {
		if username, ok := GetUsername(c); ok {
			return "/users/" + username
		}
		return "/login"
	}
}
