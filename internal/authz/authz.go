// Package authz decides whether the identity carried by a request may act on
// an owner-scoped resource.
package authz

import (
	"context"
	"errors"

	"github.com/yukikurage/notes-app/internal/session"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
)

// OwnerResolver loads the owner of the target resource. It runs only after
// the caller is known to be authenticated.
type OwnerResolver func(ctx context.Context) (string, error)

// Authorize checks ctx's identity against resolve's owner. Resolver errors
// (for example a not-found lookup) are returned unchanged.
func Authorize(ctx context.Context, resolve OwnerResolver) (string, error) {
	username, ok := session.IdentityFrom(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}

	owner, err := resolve(ctx)
	if err != nil {
		return "", err
	}

	if username != owner {
		return "", ErrForbidden
	}
	return username, nil
}

// AuthorizeOwner is Authorize for an owner that is already known.
func AuthorizeOwner(ctx context.Context, owner string) (string, error) {
	return Authorize(ctx, func(context.Context) (string, error) {
		return owner, nil
	})
}
