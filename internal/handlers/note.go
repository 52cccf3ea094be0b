package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/notes-app/internal/dto"
	apierrors "github.com/yukikurage/notes-app/internal/errors"
	"github.com/yukikurage/notes-app/internal/middleware"
	"github.com/yukikurage/notes-app/internal/services"
	"github.com/yukikurage/notes-app/internal/session"
	"github.com/yukikurage/notes-app/internal/utils"
)

// NoteHandler serves owner-scoped note operations.
type NoteHandler struct {
	noteService *services.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService *services.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

type noteRequest struct {
	Title   string `form:"title" json:"title" binding:"required,max=100"`
	Content string `form:"content" json:"content" binding:"required"`
}

// ListNotes returns a page of the owner's notes
func (h *NoteHandler) ListNotes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	notes, total, err := h.noteService.List(c.Request.Context(), c.Param("username"), params)
	if err != nil {
		middleware.Deny(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNoteListResponse(notes, params.Page, params.Limit, total))
}

// NewNoteForm returns what a client needs to render the add-note form
func (h *NoteHandler) NewNoteForm(c *gin.Context) {
	form, err := session.PrepareForm(sessions.Default(c))
	if err != nil {
		middleware.Deny(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// CreateNote adds a note for :username
func (h *NoteHandler) CreateNote(c *gin.Context) {
	owner := c.Param("username")

	var req noteRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.ValidationFailed(c, fieldErrors(err))
		return
	}

	if _, err := h.noteService.Create(c.Request.Context(), owner, services.NoteInput{
		Title:   req.Title,
		Content: req.Content,
	}); err != nil {
		middleware.Deny(c, err)
		return
	}

	c.Redirect(http.StatusFound, profilePath(owner))
}

// GetNote returns the note loaded by RequireNoteAccess
func (h *NoteHandler) GetNote(c *gin.Context) {
	note, ok := middleware.GetNote(c)
	if !ok {
		apierrors.InternalError(c, "Note not found in context")
		return
	}
	c.JSON(http.StatusOK, dto.ToNoteDTO(note))
}

// EditNoteForm returns the note with a forgery token for the edit form
func (h *NoteHandler) EditNoteForm(c *gin.Context) {
	note, ok := middleware.GetNote(c)
	if !ok {
		apierrors.InternalError(c, "Note not found in context")
		return
	}

	form, err := session.PrepareForm(sessions.Default(c))
	if err != nil {
		middleware.Deny(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NoteFormDTO{
		Note:     dto.ToNoteDTO(note),
		FormData: form,
	})
}

// UpdateNote replaces the note's title and content
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	note, ok := middleware.GetNote(c)
	if !ok {
		apierrors.InternalError(c, "Note not found in context")
		return
	}

	var req noteRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.ValidationFailed(c, fieldErrors(err))
		return
	}

	updated, err := h.noteService.Update(c.Request.Context(), note.ID, services.NoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		middleware.Deny(c, err)
		return
	}

	c.Redirect(http.StatusFound, profilePath(updated.Owner))
}

// DeleteNote removes the note
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	note, ok := middleware.GetNote(c)
	if !ok {
		apierrors.InternalError(c, "Note not found in context")
		return
	}

	deleted, err := h.noteService.Delete(c.Request.Context(), note.ID)
	if err != nil {
		middleware.Deny(c, err)
		return
	}

	c.Redirect(http.StatusFound, profilePath(deleted.Owner))
}
