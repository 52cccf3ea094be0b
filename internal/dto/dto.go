package dto

import (
	"time"

	"github.com/yukikurage/notes-app/internal/models"
	"github.com/yukikurage/notes-app/internal/session"
)

// UserDTO represents a user in API responses. The password hash is never included.
type UserDTO struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// NoteDTO represents a note in API responses
type NoteDTO struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileDTO is the owner's view of their account
type ProfileDTO struct {
	User  UserDTO   `json:"user"`
	Notes []NoteDTO `json:"notes"`
	session.FormData
}

// NoteFormDTO is a note together with what is needed to submit changes to it
type NoteFormDTO struct {
	Note NoteDTO `json:"note"`
	session.FormData
}

// NoteListResponse represents a paginated list of notes
type NoteListResponse struct {
	Notes      []NoteDTO `json:"notes"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
	TotalPages int       `json:"total_pages"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// ToNoteDTO converts a Note model to NoteDTO
func ToNoteDTO(note models.Note) NoteDTO {
	return NoteDTO{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Owner:     note.Owner,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// ToNoteDTOs converts a slice of notes
func ToNoteDTOs(notes []models.Note) []NoteDTO {
	items := make([]NoteDTO, len(notes))
	for i, note := range notes {
		items[i] = ToNoteDTO(note)
	}
	return items
}

// ToNoteListResponse converts a page of notes to NoteListResponse
func ToNoteListResponse(notes []models.Note, page, pageSize int, totalCount int64) NoteListResponse {
	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return NoteListResponse{
		Notes:      ToNoteDTOs(notes),
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}
