package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/carpool/internal/common"
	"github.com/dmitrijs2005/carpool/internal/mapview"
	"github.com/dmitrijs2005/carpool/internal/views"
)

// Map geocodes every trip and prints the map summary. The model is kept so
// that later searches can refer to it. refresh drops cached coordinates
// first.
func (a *App) Map(ctx context.Context, refresh bool) error {
	trips, users, err := a.tripService.All(ctx)
	if err != nil {
		return err
	}

	if refresh && a.cache != nil {
		a.cache.Clear()
	}

	model := a.maps.Aggregate(ctx, trips, users)
	a.lastMap = &model
	a.logCacheStats(ctx)

	fmt.Fprint(a.out, views.MapSummary(model))
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	res, err := a.maps.Locate(ctx, query)
	if errors.Is(err, common.ErrAddressNotFound) {
		fmt.Fprint(a.out, views.Search(nil))
		return nil
	}
	if err != nil {
		return err
	}

	a.centerOn(res)
	return nil
}

// Suggest prints address completions and lets the user pick one, which
// centers the map on it. Lookup failures print nothing.
func (a *App) Suggest(ctx context.Context, partial string) error {
	list, err := a.suggester.Suggest(ctx, partial)
	if err != nil {
		a.logger.Warn(ctx, "address suggestions unavailable", "error", err)
		return nil
	}
	fmt.Fprint(a.out, views.Suggestions(list))
	if len(list) == 0 {
		return nil
	}

	choice, err := getSimpleText(a.reader, "Numéro de l'adresse (vide pour ignorer)", a.out)
	if err != nil {
		return err
	}
	n, convErr := strconv.Atoi(choice)
	if convErr != nil || n < 1 || n > len(list) {
		return nil
	}
	a.centerOn(mapview.SearchResult{
		Query:      list[n-1].Label,
		Coordinate: list[n-1].Coordinate,
		Zoom:       mapview.SelectZoom,
		Label:      "Adresse sélectionnée",
	})
	return nil
}

// centerOn moves the last map view to res and prints it.
func (a *App) centerOn(res mapview.SearchResult) {
	if a.lastMap != nil {
		a.lastMap.Initial.Center = res.Coordinate
		a.lastMap.Initial.Zoom = res.Zoom
		a.lastMap.FitBounds = false
	}
	fmt.Fprint(a.out, views.Search(&res))
}

func (a *App) logCacheStats(ctx context.Context) {
	if a.cache == nil {
		return
	}
	st := a.cache.Stats()
	a.logger.Debug(ctx, "geocode cache",
		"hits", st.Hits, "misses", st.Misses, "sets", st.Sets, "evictions", st.Evictions, "size", st.Size)
}
