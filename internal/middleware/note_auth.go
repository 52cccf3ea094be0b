package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/notes-app/internal/constants"
	apierrors "github.com/yukikurage/notes-app/internal/errors"
	"github.com/yukikurage/notes-app/internal/models"
	"github.com/yukikurage/notes-app/internal/services"
)

// RequireNoteAccess loads :note_id and allows the request only for its owner.
func RequireNoteAccess(noteService *services.NoteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		noteID, err := strconv.ParseUint(c.Param("note_id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid note ID")
			c.Abort()
			return
		}

		note, err := noteService.Get(c.Request.Context(), noteID)
		if err != nil {
			Deny(c, err)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyNote, *note)
		c.Next()
	}
}

// GetNote retrieves the note loaded by RequireNoteAccess
func GetNote(c *gin.Context) (models.Note, bool) {
	v, exists := c.Get(constants.ContextKeyNote)
	if !exists {
		return models.Note{}, false
	}
	note, ok := v.(models.Note)
	return note, ok
}
