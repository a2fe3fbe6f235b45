package geo

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/dmitrijs2005/carpool/internal/logging"
	"github.com/dmitrijs2005/carpool/internal/models"
	"github.com/dmitrijs2005/carpool/internal/netx"
)

var tracer = otel.Tracer("github.com/dmitrijs2005/carpool/internal/geo")

// Resolver resolves an address to a coordinate. ok is false when the
// address could not be resolved.
type Resolver interface {
	Resolve(ctx context.Context, address string) (coord models.Coordinate, ok bool)
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimClient resolves addresses with the Nominatim search API.
type NominatimClient struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    logging.Logger
}

// NewNominatimClient returns a client for baseURL. A zero timeout leaves
// requests unbounded apart from ctx.
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, logger logging.Logger) *NominatimClient {
	return &NominatimClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// Resolve returns the first search result for address.
func (c *NominatimClient) Resolve(ctx context.Context, address string) (models.Coordinate, bool) {
	ctx, span := tracer.Start(ctx, "geo.resolve")
	defer span.End()
	span.SetAttributes(attribute.String("geo.address", address))

	coord, ok := c.lookup(ctx, address)
	span.SetAttributes(attribute.Bool("geo.resolved", ok))
	return coord, ok
}

func (c *NominatimClient) lookup(ctx context.Context, address string) (models.Coordinate, bool) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", address)

	h := http.Header{}
	if c.userAgent != "" {
		h.Set("User-Agent", c.userAgent)
	}

	var places []nominatimPlace
	if err := netx.GetJSON(ctx, c.http, c.baseURL+"/search?"+q.Encode(), h, &places); err != nil {
		c.logger.Warn(ctx, "geocode request failed", "address", address, "error", err)
		return models.Coordinate{}, false
	}
	if len(places) == 0 {
		c.logger.Debug(ctx, "geocode no match", "address", address)
		return models.Coordinate{}, false
	}

	lat, errLat := strconv.ParseFloat(places[0].Lat, 64)
	lon, errLon := strconv.ParseFloat(places[0].Lon, 64)
	if errLat != nil || errLon != nil {
		c.logger.Warn(ctx, "geocode bad coordinates", "address", address, "lat", places[0].Lat, "lon", places[0].Lon)
		return models.Coordinate{}, false
	}

	return models.Coordinate{Lat: lat, Lon: lon}, true
}
