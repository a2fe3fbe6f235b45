package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/carpool/internal/kv"
	"github.com/dmitrijs2005/carpool/internal/logging"
	"github.com/dmitrijs2005/carpool/internal/models"
	"github.com/dmitrijs2005/carpool/internal/repositories/trips"
)

// TripInput is the trip form. The route is always between the user's home
// and work; Swap makes it work to home.
type TripInput struct {
	Swap  bool
	Date  string
	Time  string
	Video string
}

type TripService interface {
	PostTrip(ctx context.Context, in TripInput) (*models.Trip, error)
	History(ctx context.Context) ([]models.Trip, error)
	// All returns every trip with the user directory, as the map needs them.
	All(ctx context.Context) ([]models.Trip, []models.User, error)
}

type tripService struct {
	store    kv.Store
	accounts AccountService
	logger   logging.Logger
}

func NewTripService(store kv.Store, accounts AccountService, logger logging.Logger) TripService {
	return &tripService{store: store, accounts: accounts, logger: logger}
}

func (t *tripService) getTripRepo() trips.Ledger {
	return trips.NewKVLedger(t.store)
}

func (t *tripService) PostTrip(ctx context.Context, in TripInput) (*models.Trip, error) {
	user, err := t.accounts.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := t.accounts.RequireAddresses(user); err != nil {
		return nil, err
	}

	trip := models.Trip{
		UserEmail: user.Email,
		From:      user.Home,
		To:        user.Work,
		Date:      strings.TrimSpace(in.Date),
		Time:      strings.TrimSpace(in.Time),
		Video:     strings.TrimSpace(in.Video),
	}
	if in.Swap {
		trip.From, trip.To = trip.To, trip.From
	}

	if err := models.Validate(trip); err != nil {
		return nil, err
	}

	if err := t.getTripRepo().Add(ctx, trip); err != nil {
		return nil, fmt.Errorf("post trip: %w", err)
	}

	t.logger.Info(ctx, "trip posted", "email", trip.UserEmail, "from", trip.From, "to", trip.To)
	return &trip, nil
}

func (t *tripService) History(ctx context.Context) ([]models.Trip, error) {
	user, err := t.accounts.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	return t.getTripRepo().ListByUser(ctx, user.Email)
}

func (t *tripService) All(ctx context.Context) ([]models.Trip, []models.User, error) {
	all, err := t.getTripRepo().List(ctx)
	if err != nil {
		return nil, nil, err
	}
	dir, err := usersRepo(t.store).List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return all, dir, nil
}
