package trips

import (
	"context"

	"github.com/dmitrijs2005/carpool/internal/kv"
	"github.com/dmitrijs2005/carpool/internal/models"
	"github.com/dmitrijs2005/carpool/internal/repositories"
)

type KVLedger struct {
	store kv.Store
}

func NewKVLedger(store kv.Store) *KVLedger {
	return &KVLedger{store: store}
}

func (l *KVLedger) List(ctx context.Context) ([]models.Trip, error) {
	trips := []models.Trip{}
	if _, err := kv.GetJSON(ctx, l.store, repositories.SlotTrips, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (l *KVLedger) Add(ctx context.Context, trip models.Trip) error {
	trips, err := l.List(ctx)
	if err != nil {
		return err
	}
	return kv.SetJSON(ctx, l.store, repositories.SlotTrips, append(trips, trip))
}

func (l *KVLedger) ListByUser(ctx context.Context, email string) ([]models.Trip, error) {
	trips, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		if t.UserEmail == email {
			out = append(out, t)
		}
	}
	return out, nil
}
