package kv

import "context"

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// Atomically runs fn against a transactional view of the store.
	Atomically(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}
