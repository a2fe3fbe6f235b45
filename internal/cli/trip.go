package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/carpool/internal/services"
	"github.com/dmitrijs2005/carpool/internal/views"
)

// AddTrip posts a home to work trip, or work to home when the user asks
// to swap.
func (a *App) AddTrip(ctx context.Context) error {
	if a.user == nil {
		return services.ErrNotLoggedIn
	}
	if err := a.accountService.RequireAddresses(a.user); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Nouveau trajet : %s → %s\n", a.user.Home, a.user.Work)

	var in services.TripInput
	var err error
	if in.Swap, err = Confirm(a.reader, "Permuter départ et arrivée ?", a.out); err != nil {
		return err
	}
	if in.Date, err = getSimpleText(a.reader, "Date (AAAA-MM-JJ)", a.out); err != nil {
		return err
	}
	if in.Time, err = getSimpleText(a.reader, "Heure (HH:MM)", a.out); err != nil {
		return err
	}
	if in.Video, err = getSimpleText(a.reader, "Lien vidéo YouTube (optionnel)", a.out); err != nil {
		return err
	}

	if _, err := a.tripService.PostTrip(ctx, in); err != nil {
		return err
	}

	a.lastMap = nil
	fmt.Fprintln(a.out, "Trajet ajouté !")
	return nil
}

func (a *App) History(ctx context.Context) error {
	trips, err := a.tripService.History(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out, views.History(trips))
	return nil
}
