package users

import (
	"context"

	"github.com/dmitrijs2005/carpool/internal/kv"
	"github.com/dmitrijs2005/carpool/internal/models"
	"github.com/dmitrijs2005/carpool/internal/repositories"
)

// KVDirectory implements Directory over the "users" and "currentUser" slots.
type KVDirectory struct {
	store kv.Store
}

func NewKVDirectory(store kv.Store) *KVDirectory {
	return &KVDirectory{store: store}
}

func (d *KVDirectory) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if _, err := kv.GetJSON(ctx, d.store, repositories.SlotUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (d *KVDirectory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (d *KVDirectory) Upsert(ctx context.Context, user models.User) error {
	users, err := d.List(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range users {
		if users[i].Email == user.Email {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}

	return kv.SetJSON(ctx, d.store, repositories.SlotUsers, users)
}

func (d *KVDirectory) Current(ctx context.Context) (*models.User, error) {
	var user models.User
	found, err := kv.GetJSON(ctx, d.store, repositories.SlotCurrentUser, &user)
	if err != nil || !found {
		return nil, err
	}
	return &user, nil
}

func (d *KVDirectory) SetCurrent(ctx context.Context, user models.User) error {
	return kv.SetJSON(ctx, d.store, repositories.SlotCurrentUser, user)
}

func (d *KVDirectory) ClearCurrent(ctx context.Context) error {
	return d.store.Delete(ctx, repositories.SlotCurrentUser)
}
