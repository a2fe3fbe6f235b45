package comments

import (
	"context"

	"github.com/dmitrijs2005/carpool/internal/models"
)

// Ledger is the append-only public comment collection.
type Ledger interface {
	List(ctx context.Context) ([]models.Comment, error)
	Add(ctx context.Context, comment models.Comment) error
	// ListFor returns the comments left on targetEmail's profile.
	ListFor(ctx context.Context, targetEmail string) ([]models.Comment, error)
}
