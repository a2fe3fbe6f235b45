package comments

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

func (l *KVLedger) List(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}
	if _, err := kv.GetJSON(ctx, l.store, repositories.SlotComments, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (l *KVLedger) Add(ctx context.Context, comment models.Comment) error {
	comments, err := l.List(ctx)
	if err != nil {
		return err
	}
	return kv.SetJSON(ctx, l.store, repositories.SlotComments, append(comments, comment))
}

func (l *KVLedger) ListFor(ctx context.Context, targetEmail string) ([]models.Comment, error) {
	comments, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.TargetEmail == targetEmail {
			out = append(out, c)
		}
	}
	return out, nil
}
