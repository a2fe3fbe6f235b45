package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/carpool/internal/common"
	"github.com/dmitrijs2005/carpool/internal/config"
	"github.com/dmitrijs2005/carpool/internal/geo"
	"github.com/dmitrijs2005/carpool/internal/kv"
	"github.com/dmitrijs2005/carpool/internal/logging"
	"github.com/dmitrijs2005/carpool/internal/mapview"
	"github.com/dmitrijs2005/carpool/internal/models"
	"github.com/dmitrijs2005/carpool/internal/services"
)

// ------------ helpers ------------

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

type fakeSuggester struct {
	out     []geo.Suggestion
	err     error
	queries []string
}

func (f *fakeSuggester) Suggest(_ context.Context, partial string) ([]geo.Suggestion, error) {
	f.queries = append(f.queries, partial)
	return f.out, f.err
}

type fakeMaps struct {
	trips   []models.Trip
	users   []models.User
	model   mapview.RenderModel
	located map[string]models.Coordinate
}

func (f *fakeMaps) Aggregate(_ context.Context, trips []models.Trip, users []models.User) mapview.RenderModel {
	f.trips, f.users = trips, users
	return f.model
}

func (f *fakeMaps) Locate(_ context.Context, q string) (mapview.SearchResult, error) {
	c, ok := f.located[q]
	if !ok {
		return mapview.SearchResult{}, mapview.ErrAddressNotFound
	}
	return mapview.SearchResult{Query: q, Coordinate: c, Zoom: mapview.SearchZoom, Label: "Adresse recherchée"}, nil
}

func newTestApp(t *testing.T, r *bufio.Reader) (*App, *bytes.Buffer) {
	t.Helper()
	store := kv.NewMemoryStore()
	logger := logging.Discard()
	as := services.NewAccountService(store, logger)
	out := &bytes.Buffer{}
	return &App{
		config:         &config.Config{},
		logger:         logger,
		accountService: as,
		tripService:    services.NewTripService(store, as, logger),
		profileService: services.NewProfileService(store, as, logger),
		maps:           &fakeMaps{},
		suggester:      &fakeSuggester{},
		reader:         r,
		out:            out,
	}, out
}

func loginLines() []string {
	return []string{"Alice", "Martin", "alice@example.com", "0601020304", ""}
}

// ------------ tests ------------

func TestLogin_ShowsAddressGateForNewUser(t *testing.T) {
	app, out := newTestApp(t, readerFromLines(loginLines()...))

	require.NoError(t, app.Login(context.Background()))
	require.True(t, app.isLoggedIn())
	assert.False(t, app.hasAddresses())
	assert.Contains(t, out.String(), "Complétez vos adresses")
	assert.Equal(t, "(alice@example.com adresses manquantes)", app.getStatus())
}

func TestLogin_ValidationError(t *testing.T) {
	app, _ := newTestApp(t, readerFromLines("Alice", "", "alice@example.com", "06", ""))

	err := app.Login(context.Background())
	require.ErrorIs(t, err, common.ErrValidation)
	assert.False(t, app.isLoggedIn())
}

func TestFullSession(t *testing.T) {
	lines := append(loginLines(),
		// addresses
		"10 rue de Rivoli, Paris",
		"1 parvis de la Défense",
		// addtrip
		"o",
		"2024-06-01",
		"07:45",
		"https://youtu.be/dQw4w9WgXcQ",
	)
	app, out := newTestApp(t, readerFromLines(lines...))
	ctx := context.Background()

	require.NoError(t, app.Login(ctx))
	require.NoError(t, app.Addresses(ctx))
	assert.True(t, app.hasAddresses())
	assert.Equal(t, "(alice@example.com)", app.getStatus())

	require.NoError(t, app.AddTrip(ctx))
	assert.Contains(t, out.String(), "Trajet ajouté !")

	out.Reset()
	require.NoError(t, app.History(ctx))
	assert.Contains(t, out.String(), "2024-06-01 07:45 : 1 parvis de la Défense → 10 rue de Rivoli, Paris")

	maps := app.maps.(*fakeMaps)
	require.NoError(t, app.Map(ctx, false))
	require.Len(t, maps.trips, 1)
	require.Len(t, maps.users, 1)
	assert.NotNil(t, app.lastMap)

	require.NoError(t, app.Logout(ctx))
	assert.False(t, app.isLoggedIn())
	assert.Nil(t, app.lastMap)

	_, err := app.accountService.CurrentUser(ctx)
	assert.ErrorIs(t, err, services.ErrNotLoggedIn)
}

func TestAddTrip_Gated(t *testing.T) {
	app, _ := newTestApp(t, readerFromLines(loginLines()...))
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	assert.ErrorIs(t, app.AddTrip(ctx), services.ErrAddressesRequired)

	app.user = nil
	assert.ErrorIs(t, app.AddTrip(ctx), services.ErrNotLoggedIn)
	assert.ErrorIs(t, app.Profile(ctx), services.ErrNotLoggedIn)
	assert.ErrorIs(t, app.Addresses(ctx), services.ErrNotLoggedIn)
}

func TestUserAndComment(t *testing.T) {
	lines := append(loginLines(), "Très sympa")
	app, out := newTestApp(t, readerFromLines(lines...))
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	out.Reset()
	require.NoError(t, app.User(ctx, "ghost@example.com"))
	assert.Contains(t, out.String(), "Utilisateur introuvable.")

	out.Reset()
	require.NoError(t, app.Comment(ctx, "alice@example.com"))
	assert.Contains(t, out.String(), "Alice Martin : Très sympa")
}

func TestSearch(t *testing.T) {
	app, out := newTestApp(t, readerFromLines())
	paris := models.Coordinate{Lat: 48.8566, Lon: 2.3522}
	app.maps = &fakeMaps{located: map[string]models.Coordinate{"Paris": paris}}
	app.lastMap = &mapview.RenderModel{FitBounds: true}
	ctx := context.Background()

	require.NoError(t, app.Search(ctx, "Paris"))
	assert.Contains(t, out.String(), "Adresse recherchée")
	assert.Equal(t, paris, app.lastMap.Initial.Center)
	assert.Equal(t, mapview.SearchZoom, app.lastMap.Initial.Zoom)
	assert.False(t, app.lastMap.FitBounds)

	out.Reset()
	require.NoError(t, app.Search(ctx, "Atlantis"))
	assert.Equal(t, "Adresse non trouvée\n", out.String())
}

func TestSuggest(t *testing.T) {
	app, out := newTestApp(t, readerFromLines("", ""))
	app.suggester = &fakeSuggester{out: []geo.Suggestion{{Label: "8 Boulevard du Port 80000 Amiens"}}}
	app.lastMap = &mapview.RenderModel{FitBounds: true}

	require.NoError(t, app.Suggest(context.Background(), "8 bd du port"))
	assert.Equal(t, "1. 8 Boulevard du Port 80000 Amiens\nNuméro de l'adresse (vide pour ignorer)\n> ", out.String())
	assert.True(t, app.lastMap.FitBounds)

	out.Reset()
	app.suggester = &fakeSuggester{err: errors.New("offline")}
	require.NoError(t, app.Suggest(context.Background(), "8 bd du port"))
	assert.Empty(t, out.String())

	app.suggester = &fakeSuggester{}
	require.NoError(t, app.Suggest(context.Background(), "nulle part"))
	assert.Empty(t, out.String())
}

func TestSuggest_PickCentersMap(t *testing.T) {
	amiens := models.Coordinate{Lat: 49.8941, Lon: 2.3024}
	app, out := newTestApp(t, readerFromLines("2"))
	app.suggester = &fakeSuggester{out: []geo.Suggestion{
		{Label: "8 Boulevard du Port 80000 Amiens", Coordinate: amiens},
		{Label: "8 Rue du Port 80000 Amiens", Coordinate: models.Coordinate{Lat: 49.9, Lon: 2.31}},
	}}
	app.lastMap = &mapview.RenderModel{FitBounds: true}

	require.NoError(t, app.Suggest(context.Background(), "8 port amiens"))
	assert.Contains(t, out.String(), "Adresse sélectionnée")
	assert.Contains(t, out.String(), "8 Rue du Port 80000 Amiens")
	assert.Equal(t, models.Coordinate{Lat: 49.9, Lon: 2.31}, app.lastMap.Initial.Center)
	assert.Equal(t, mapview.SelectZoom, app.lastMap.Initial.Zoom)
	assert.False(t, app.lastMap.FitBounds)

	out.Reset()
	app.reader = readerFromLines("7")
	require.NoError(t, app.Suggest(context.Background(), "8 port amiens"))
	assert.NotContains(t, out.String(), "Adresse sélectionnée")
	assert.Equal(t, models.Coordinate{Lat: 49.9, Lon: 2.31}, app.lastMap.Initial.Center)
}

func TestRestoreSession(t *testing.T) {
	app, _ := newTestApp(t, readerFromLines(loginLines()...))
	ctx := context.Background()
	require.NoError(t, app.Login(ctx))

	app.user = nil
	app.restoreSession(ctx)
	require.NotNil(t, app.user)
	assert.Equal(t, "alice@example.com", app.user.Email)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Adresse non trouvée", userMessage(mapview.ErrAddressNotFound))
	assert.Contains(t, userMessage(services.ErrNotLoggedIn), "login")
	assert.Contains(t, userMessage(errors.New("disk full")), "disk full")
}

func TestRunREPL_PipedSessionSharesReader(t *testing.T) {
	captureOutput(t)
	lines := append([]string{"login"}, loginLines()...)
	lines = append(lines,
		"addresses",
		"rue de riv?",
		"1",
		"1 parvis de la Défense",
		"history",
		"exit",
	)
	app, out := newTestApp(t, readerFromLines(lines...))
	app.suggester = &fakeSuggester{out: []geo.Suggestion{{Label: "Rue de Rivoli 75001 Paris"}}}

	runREPL(context.Background(), app, app.getStatus, app.reader)

	require.True(t, app.isLoggedIn(), "output: %s", out.String())
	assert.Equal(t, "alice@example.com", app.user.Email)
	assert.Equal(t, "Rue de Rivoli 75001 Paris", app.user.Home)
	assert.Equal(t, "1 parvis de la Défense", app.user.Work)
	assert.Contains(t, out.String(), "Historique de mes trajets")
	assert.NotContains(t, out.String(), "EOF")
}

type staticResolver map[string]models.Coordinate

func (s staticResolver) Resolve(_ context.Context, address string) (models.Coordinate, bool) {
	c, ok := s[address]
	return c, ok
}

func TestMap_LogsCacheStatsAndRefreshClears(t *testing.T) {
	app, _ := newTestApp(t, readerFromLines())
	ctx := context.Background()

	var logs bytes.Buffer
	app.logger = logging.New("debug", &logs)

	_, err := app.accountService.Login(ctx, services.LoginInput{Prenom: "A", Nom: "M", Email: "a@example.com", Tel: "06"})
	require.NoError(t, err)
	_, err = app.accountService.UpdateAddresses(ctx, "Home", "Work")
	require.NoError(t, err)
	_, err = app.tripService.PostTrip(ctx, services.TripInput{Date: "d", Time: "t"})
	require.NoError(t, err)

	cache := geo.NewCachedResolver(staticResolver{
		"Home": {Lat: 48.85, Lon: 2.35},
		"Work": {Lat: 48.89, Lon: 2.23},
	}, geo.CacheConfig{}, logging.Discard())
	app.cache = cache
	app.maps = mapview.NewAggregator(cache, mapview.Options{}, logging.Discard())

	require.NoError(t, app.Map(ctx, false))
	assert.Contains(t, logs.String(), "hits=0 misses=2 sets=2")

	require.NoError(t, app.Map(ctx, false))
	assert.Contains(t, logs.String(), "hits=2 misses=2 sets=2")

	require.NoError(t, app.Map(ctx, true))
	assert.Contains(t, logs.String(), "hits=2 misses=4 sets=4 evictions=0 size=2")
	require.Len(t, app.lastMap.Markers, 2)
}
