package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dmitrijs2005/carpool/internal/models"
	"github.com/dmitrijs2005/carpool/internal/netx"
)

const (
	// MinSuggestLength is the shortest input worth querying.
	MinSuggestLength = 3
	// SuggestLimit caps the number of suggestions per query.
	SuggestLimit = 5
)

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Label      string
	Coordinate models.Coordinate
}

type featureCollection struct {
	Features []struct {
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
		Geometry struct {
			// GeoJSON order: [lon, lat]
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// AddressClient queries the api-adresse.data.gouv.fr search endpoint.
type AddressClient struct {
	baseURL string
	http    *http.Client
}

func NewAddressClient(baseURL string, timeout time.Duration) *AddressClient {
	return &AddressClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Suggest returns up to SuggestLimit labelled addresses matching partial.
// Inputs shorter than MinSuggestLength return nothing without a request.
func (c *AddressClient) Suggest(ctx context.Context, partial string) ([]Suggestion, error) {
	partial = strings.TrimSpace(partial)
	if len([]rune(partial)) < MinSuggestLength {
		return nil, nil
	}

	ctx, span := tracer.Start(ctx, "geo.suggest")
	defer span.End()
	span.SetAttributes(attribute.String("geo.query", partial))

	q := url.Values{}
	q.Set("q", partial)
	q.Set("limit", strconv.Itoa(SuggestLimit))

	var fc featureCollection
	if err := netx.GetJSON(ctx, c.http, c.baseURL+"/search/?"+q.Encode(), nil, &fc); err != nil {
		return nil, fmt.Errorf("suggest request failed: %w", err)
	}

	out := make([]Suggestion, 0, min(len(fc.Features), SuggestLimit))
	for _, f := range fc.Features {
		if len(out) == SuggestLimit {
			break
		}
		s := Suggestion{Label: f.Properties.Label}
		if len(f.Geometry.Coordinates) >= 2 {
			s.Coordinate = models.Coordinate{Lat: f.Geometry.Coordinates[1], Lon: f.Geometry.Coordinates[0]}
		}
		out = append(out, s)
	}
	span.SetAttributes(attribute.Int("geo.suggestions", len(out)))
	return out, nil
}
