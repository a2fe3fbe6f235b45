package trips

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/carpool/internal/kv"
	"github.com/dmitrijs2005/carpool/internal/models"
)

func TestAdd_ThenListByUser(t *testing.T) {
	l := NewKVLedger(kv.NewMemoryStore())
	ctx := context.Background()

	t1 := models.Trip{UserEmail: "a@x.com", From: "Home A", To: "Work A", Date: "2025-03-01", Time: "08:00"}
	t2 := models.Trip{UserEmail: "b@x.com", From: "Home B", To: "Work B", Date: "2025-03-01", Time: "09:00"}
	t3 := models.Trip{UserEmail: "a@x.com", From: "Work A", To: "Home A", Date: "2025-03-01", Time: "18:00", Video: "https://youtu.be/abcdefghijk"}

	for _, tr := range []models.Trip{t1, t2, t3} {
		require.NoError(t, l.Add(ctx, tr))
	}

	mine, err := l.ListByUser(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []models.Trip{t1, t3}, mine)

	all, err := l.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Trip{t1, t2, t3}, all, "ledger keeps insertion order")
}

func TestListByUser_NoMatch(t *testing.T) {
	l := NewKVLedger(kv.NewMemoryStore())
	ctx := context.Background()
	require.NoError(t, l.Add(ctx, models.Trip{UserEmail: "a@x.com"}))

	got, err := l.ListByUser(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAdd_AcceptsIncompleteTrips(t *testing.T) {
	l := NewKVLedger(kv.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, l.Add(ctx, models.Trip{}))
	all, err := l.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestList_StorageErrorPropagates(t *testing.T) {
	store := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "trips", []byte("{")))

	l := NewKVLedger(store)
	_, err := l.List(ctx)
	require.Error(t, err)
	require.Error(t, l.Add(ctx, models.Trip{}))
	_, err = l.ListByUser(ctx, "a@x.com")
	require.Error(t, err)
}
