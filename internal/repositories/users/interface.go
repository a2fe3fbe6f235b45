package users

import (
	"context"

	"github.com/dmitrijs2005/carpool/internal/models"
)

// Directory is the email-keyed user collection plus the session pointer.
// Absent users are reported as nil, never as errors.
type Directory interface {
	// List returns every user in insertion order.
	List(ctx context.Context) ([]models.User, error)

	// FindByEmail returns the user with that email or nil.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Upsert replaces the user with the same email, or appends it.
	Upsert(ctx context.Context, user models.User) error

	// Current returns the session user snapshot or nil. It is not refreshed
	// when the directory entry changes.
	Current(ctx context.Context) (*models.User, error)
	SetCurrent(ctx context.Context, user models.User) error
	ClearCurrent(ctx context.Context) error
}
