package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/carpool/internal/config"
	"github.com/dmitrijs2005/carpool/internal/db"
	"github.com/dmitrijs2005/carpool/internal/geo"
	"github.com/dmitrijs2005/carpool/internal/logging"
	"github.com/dmitrijs2005/carpool/internal/mapview"
	"github.com/dmitrijs2005/carpool/internal/models"
	"github.com/dmitrijs2005/carpool/internal/services"
)

// mapBuilder is the part of mapview.Aggregator the shell uses.
type mapBuilder interface {
	Aggregate(ctx context.Context, trips []models.Trip, users []models.User) mapview.RenderModel
	Locate(ctx context.Context, query string) (mapview.SearchResult, error)
}

type suggester interface {
	Suggest(ctx context.Context, partial string) ([]geo.Suggestion, error)
}

type App struct {
	config   *config.Config
	logger   logging.Logger
	database *db.Database

	accountService services.AccountService
	tripService    services.TripService
	profileService services.ProfileService
	maps           mapBuilder
	suggester      suggester
	// cache is nil when geocode caching is disabled.
	cache *geo.CachedResolver

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	user    *models.User
	lastMap *mapview.RenderModel
}

// NewApp opens the database and wires the geocoding clients and services.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	database, err := db.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		logger.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	var resolver geo.Resolver = geo.NewNominatimClient(c.GeocoderURL, c.UserAgent, c.HTTPTimeout, logger)
	var cache *geo.CachedResolver
	if c.GeocodeCacheTTL > 0 {
		cache = geo.NewCachedResolver(resolver, geo.CacheConfig{TTL: c.GeocodeCacheTTL, MaxSize: c.GeocodeCacheSize}, logger)
		resolver = cache
	}

	aggregator := mapview.NewAggregator(resolver, mapview.Options{
		Initial: mapview.View{
			Center: models.Coordinate{Lat: c.MapCenterLat, Lon: c.MapCenterLon},
			Zoom:   c.MapZoom,
		},
		Tile:        mapview.Tile{URLTemplate: c.TileURL, Attribution: c.TileAttribution},
		Concurrency: c.GeocodeConcurrency,
	}, logger)

	as := services.NewAccountService(database.Store, logger)

	return &App{
		config:         c,
		logger:         logger,
		database:       database,
		accountService: as,
		tripService:    services.NewTripService(database.Store, as, logger),
		profileService: services.NewProfileService(database.Store, as, logger),
		maps:           aggregator,
		suggester:      geo.NewAddressClient(c.AutocompleteURL, c.HTTPTimeout),
		cache:          cache,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
		interactive:    isTerminal(int(os.Stdin.Fd())),
	}, nil
}

// Run restores a saved session, shows the map and starts the REPL. It returns
// when the user exits, input ends or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "Covoiturage (tapez 'help' pour la liste des commandes)")

	a.restoreSession(ctx)
	if err := a.Map(ctx, false); err != nil {
		a.report(ctx, err)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close() {
	a.logCacheStats(context.Background())
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database", "error", err)
		}
	}
}

func (a *App) restoreSession(ctx context.Context) {
	user, err := a.accountService.CurrentUser(ctx)
	if err != nil {
		return
	}
	a.user = user
	a.logger.Debug(ctx, "session restored", "email", user.Email)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) hasAddresses() bool {
	return a.user != nil && a.user.HasAddresses()
}

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	s := a.user.Email
	if !a.user.HasAddresses() {
		s += " adresses manquantes"
	}
	return "(" + s + ")"
}
