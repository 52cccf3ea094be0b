// Package session binds authenticated identities to client sessions.
//
// The functions operate on Store, the subset of sessions.Session they need,
// so they can be exercised without a live request.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/yukikurage/notes-app/internal/constants"
	"github.com/yukikurage/notes-app/internal/utils"
)

var (
	ErrInvalidForgeryToken = errors.New("invalid forgery-protection token")
	ErrSaveSession         = errors.New("failed to save session")
)

// Store is the per-client key-value session storage.
type Store interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Delete(key interface{})
	Clear()
	AddFlash(value interface{}, vars ...string)
	Flashes(vars ...string) []interface{}
	Save() error
}

// Establish binds the session to username and drops any forgery token issued
// before login, so the next form gets a fresh one. The session id itself is
// kept: gin-contrib/sessions has no way to regenerate it in place.
func Establish(s Store, username string) error {
	s.Delete(constants.SessionKeyForgeryToken)
	s.Set(constants.SessionKeyUsername, username)
	return save(s)
}

// Current returns the username bound to the session, if any.
func Current(s Store) (string, bool) {
	username, ok := s.Get(constants.SessionKeyUsername).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}

// Clear removes the binding together with the forgery token. Clearing an empty session is not an error.
func Clear(s Store) error {
	s.Clear()
	return save(s)
}

// FormData is what a client needs to submit a state-changing form.
type FormData struct {
	ForgeryToken string   `json:"csrf_token"`
	Flashes      []string `json:"flashes,omitempty"`
}

// PrepareForm returns the session's forgery token, issuing one if needed, and drains pending flashes.
func PrepareForm(s Store) (FormData, error) {
	token, ok := s.Get(constants.SessionKeyForgeryToken).(string)
	if !ok || token == "" {
		var err error
		token, err = utils.GenerateToken(constants.ForgeryTokenBytes)
		if err != nil {
			return FormData{}, err
		}
		s.Set(constants.SessionKeyForgeryToken, token)
	}

	var flashes []string
	for _, f := range s.Flashes() {
		if msg, ok := f.(string); ok {
			flashes = append(flashes, msg)
		}
	}

	if err := save(s); err != nil {
		return FormData{}, err
	}
	return FormData{ForgeryToken: token, Flashes: flashes}, nil
}

// ValidateForgeryToken checks supplied against the token issued to this session.
func ValidateForgeryToken(s Store, supplied string) error {
	expected, ok := s.Get(constants.SessionKeyForgeryToken).(string)
	if !ok || expected == "" || supplied == "" {
		return ErrInvalidForgeryToken
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(supplied)) != 1 {
		return ErrInvalidForgeryToken
	}
	return nil
}

func save(s Store) error {
	if err := s.Save(); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveSession, err)
	}
	return nil
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying the authenticated username.
func WithIdentity(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, identityKey{}, username)
}

// IdentityFrom returns the username carried by ctx, if any.
func IdentityFrom(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(identityKey{}).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
