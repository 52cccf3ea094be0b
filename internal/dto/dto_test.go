package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/notes-app/internal/models"
)

func TestToUserDTO_OmitsPasswordHash(t *testing.T) {
	user := models.User{
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		Email:        "a@x.com",
		FirstName:    "Alice",
		LastName:     "A",
	}

	body, err := json.Marshal(ToUserDTO(user))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")

	body, err = json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret")
}

func TestToNoteListResponse_TotalPages(t *testing.T) {
	notes := []models.Note{{ID: 1, Owner: "alice"}, {ID: 2, Owner: "alice"}}

	resp := ToNoteListResponse(notes, 1, 2, 5)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Notes, 2)

	resp = ToNoteListResponse(nil, 1, 2, 0)
	assert.Equal(t, 0, resp.TotalPages)
	assert.NotNil(t, resp.Notes)
}
