package trips

import (
	"context"

	"github.com/dmitrijs2005/carpool/internal/models"
)

// Ledger is the append-only trip collection. It accepts any trip as is.
type Ledger interface {
	List(ctx context.Context) ([]models.Trip, error)
	Add(ctx context.Context, trip models.Trip) error
	ListByUser(ctx context.Context, email string) ([]models.Trip, error)
}
