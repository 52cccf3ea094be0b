package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/notes-app/internal/session"
)

func TestAuthorizeOwner(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		owner   string
		wantErr error
	}{
		{"anonymous", context.Background(), "alice", ErrUnauthenticated},
		{"other user", session.WithIdentity(context.Background(), "bob"), "alice", ErrForbidden},
		{"owner", session.WithIdentity(context.Background(), "alice"), "alice", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, err := AuthorizeOwner(tt.ctx, tt.owner)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, username)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, username)
		})
	}
}

func TestAuthorize_UnauthenticatedSkipsResolver(t *testing.T) {
	called := false
	_, err := Authorize(context.Background(), func(context.Context) (string, error) {
		called = true
		return "alice", nil
	})

	require.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, called)
}

func TestAuthorize_ResolverErrorPropagates(t *testing.T) {
	errMissing := errors.New("note not found")
	ctx := session.WithIdentity(context.Background(), "alice")

	_, err := Authorize(ctx, func(context.Context) (string, error) {
		return "", errMissing
	})

	require.ErrorIs(t, err, errMissing)
}
