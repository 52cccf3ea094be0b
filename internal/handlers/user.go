package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/notes-app/internal/dto"
	"github.com/yukikurage/notes-app/internal/metrics"
	"github.com/yukikurage/notes-app/internal/middleware"
	"github.com/yukikurage/notes-app/internal/services"
	"github.com/yukikurage/notes-app/internal/session"
	"github.com/yukikurage/notes-app/internal/utils"
)

// UserHandler serves the owner's profile and account deletion.
type UserHandler struct {
	userService *services.UserService
	noteService *services.NoteService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, noteService *services.NoteService) *UserHandler {
	return &UserHandler{
		userService: userService,
		noteService: noteService,
	}
}

// Profile returns the user with all of their notes.
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	username := c.Param("username")

	user, err := h.userService.Profile(ctx, username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			// The session outlived its account.
			if err := session.Clear(sessions.Default(c)); err != nil {
				slog.Warn("failed to clear stale session", "request_id", middleware.GetRequestID(c), "error", err)
			}
			c.Redirect(http.StatusFound, "/login")
			return
		}
		middleware.Deny(c, err)
		return
	}

	notes, _, err := h.noteService.List(ctx, username, utils.PaginationParams{})
	if err != nil {
		middleware.Deny(c, err)
		return
	}

	form, err := session.PrepareForm(sessions.Default(c))
	if err != nil {
		middleware.Deny(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileDTO{
		User:     dto.ToUserDTO(*user),
		Notes:    dto.ToNoteDTOs(notes),
		FormData: form,
	})
}

// DeleteAccount removes the user and their notes, then ends the session.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	username := c.Param("username")

	if err := h.userService.DeleteAccount(c.Request.Context(), username); err != nil {
		metrics.RecordAuthEvent("delete_account", "failure")
		middleware.Deny(c, err)
		return
	}

	// Storage has committed; only now is the session cleared.
	if err := session.Clear(sessions.Default(c)); err != nil {
		slog.Error("failed to clear session after account deletion",
			"request_id", middleware.GetRequestID(c), "username", username, "error", err)
	}

	metrics.RecordAuthEvent("delete_account", "success")
	slog.Info("account deleted", "request_id", middleware.GetRequestID(c), "username", username)
	c.Redirect(http.StatusFound, "/")
}
