package mapview

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/carpool/internal/common"
	"github.com/dmitrijs2005/carpool/internal/geo"
	"github.com/dmitrijs2005/carpool/internal/logging"
	"github.com/dmitrijs2005/carpool/internal/models"
)

var tracer = otel.Tracer("github.com/dmitrijs2005/carpool/internal/mapview")

// ErrAddressNotFound is returned by Locate when the query does not resolve.
var ErrAddressNotFound = common.ErrAddressNotFound

type Options struct {
	Initial View
	Tile    Tile
	// Concurrency caps in-flight geocoding requests; zero or less is unbounded.
	Concurrency int
}

type Aggregator struct {
	resolver geo.Resolver
	opts     Options
	logger   logging.Logger
}

func NewAggregator(resolver geo.Resolver, opts Options, logger logging.Logger) *Aggregator {
	return &Aggregator{resolver: resolver, opts: opts, logger: logger}
}

type endpoint struct {
	coord models.Coordinate
	ok    bool
}

type resolvedTrip struct {
	trip     models.Trip
	from, to endpoint
}

// Aggregate geocodes both ends of every trip and builds the render model.
// Unresolved endpoints are skipped; they never hold up the other trips.
func (a *Aggregator) Aggregate(ctx context.Context, trips []models.Trip, users []models.User) RenderModel {
	ctx, span := tracer.Start(ctx, "mapview.aggregate")
	defer span.End()

	// run correlates the per-endpoint lines of one aggregation with its span
	runID := uuid.NewString()
	span.SetAttributes(attribute.String("mapview.run_id", runID))
	log := a.logger.With("run", runID)

	resolved := a.resolveAll(ctx, log, trips)
	names := displayNames(users)

	model := RenderModel{
		Initial: a.opts.Initial,
		Tile:    a.opts.Tile,
		Padding: FitPadding,
		Markers: []Marker{},
		Lines:   []Polyline{},
		Trips:   make([]TripListItem, 0, len(trips)),
	}

	index := make(map[string]int)
	add := func(rt resolvedTrip, ep endpoint, kind EndpointKind) {
		if !ep.ok {
			model.Unresolved++
			return
		}
		key := ep.coord.Key()
		i, exists := index[key]
		if !exists {
			i = len(model.Markers)
			index[key] = i
			model.Markers = append(model.Markers, Marker{Coordinate: ep.coord})
		}
		model.Markers[i].Entries = append(model.Markers[i].Entries, Entry{
			Trip:         rt.trip,
			Kind:         kind,
			DisplayName:  names.lookup(rt.trip.UserEmail),
			ProfileEmail: rt.trip.UserEmail,
			VideoID:      VideoID(rt.trip.Video),
		})
		model.Bounds.Extend(ep.coord)
	}

	for _, rt := range resolved {
		add(rt, rt.from, EndpointOrigin)
		add(rt, rt.to, EndpointDestination)
	}

	for _, rt := range resolved {
		if rt.from.ok && rt.to.ok {
			model.Lines = append(model.Lines, Polyline{
				From:  rt.from.coord,
				To:    rt.to.coord,
				Label: rt.trip.From + " → " + rt.trip.To,
			})
		}
	}

	for _, t := range trips {
		model.Trips = append(model.Trips, TripListItem{
			Trip:         t,
			DisplayName:  names.lookup(t.UserEmail),
			ProfileEmail: t.UserEmail,
			VideoID:      VideoID(t.Video),
		})
	}

	model.FitBounds = model.Bounds.Valid()

	span.SetAttributes(
		attribute.Int("mapview.trips", len(trips)),
		attribute.Int("mapview.markers", len(model.Markers)),
		attribute.Int("mapview.unresolved", model.Unresolved),
	)
	log.Debug(ctx, "map aggregated",
		"trips", len(trips), "markers", len(model.Markers), "lines", len(model.Lines), "unresolved", model.Unresolved)

	return model
}

// resolveAll fans out one lookup per endpoint and waits for all of them.
func (a *Aggregator) resolveAll(ctx context.Context, log logging.Logger, trips []models.Trip) []resolvedTrip {
	out := make([]resolvedTrip, len(trips))

	var g errgroup.Group
	if a.opts.Concurrency > 0 {
		g.SetLimit(a.opts.Concurrency)
	}

	resolve := func(ep *endpoint, address string) {
		ep.coord, ep.ok = a.resolver.Resolve(ctx, address)
		if !ep.ok {
			log.Debug(ctx, "endpoint unresolved", "address", address)
		}
	}
	for i, t := range trips {
		out[i].trip = t
		g.Go(func() error {
			resolve(&out[i].from, t.From)
			return nil
		})
		g.Go(func() error {
			resolve(&out[i].to, t.To)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Locate geocodes a free-text search for centering the map.
func (a *Aggregator) Locate(ctx context.Context, query string) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResult{}, ErrAddressNotFound
	}
	coord, ok := a.resolver.Resolve(ctx, query)
	if !ok {
		return SearchResult{}, ErrAddressNotFound
	}
	return SearchResult{Query: query, Coordinate: coord, Zoom: SearchZoom, Label: "Adresse recherchée"}, nil
}

type nameIndex map[string]string

func displayNames(users []models.User) nameIndex {
	idx := make(nameIndex, len(users))
	for _, u := range users {
		if _, seen := idx[u.Email]; !seen {
			idx[u.Email] = u.FullName()
		}
	}
	return idx
}

// lookup falls back to the raw email for unknown users.
func (n nameIndex) lookup(email string) string {
	if name, ok := n[email]; ok && name != "" {
		return name
	}
	return email
}
