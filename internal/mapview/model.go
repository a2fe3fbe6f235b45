// Package mapview builds the trip map: it geocodes every trip endpoint,
// merges endpoints sharing a coordinate into one marker, links the two ends
// of each trip and computes the region to show. The result is a RenderModel
// that a renderer draws without further lookups.
package mapview

import (
	"regexp"

	"github.com/dmitrijs2005/carpool/internal/models"
)

// EndpointKind tells whether a marker entry is a trip's origin or destination.
type EndpointKind string

const (
	EndpointOrigin      EndpointKind = "Départ"
	EndpointDestination EndpointKind = "Arrivée"
)

// FitPadding is the pixel padding applied when fitting the view to Bounds.
const FitPadding = 30

// SearchZoom is the zoom used when centering on a searched address.
const SearchZoom = 14

// SelectZoom is the zoom used when centering on a picked suggestion.
const SelectZoom = 15

// View is a map center and zoom level.
type View struct {
	Center models.Coordinate
	Zoom   int
}

// Tile describes the base tile layer.
type Tile struct {
	URLTemplate string
	Attribution string
}

// Entry is one trip endpoint shown in a marker popup.
type Entry struct {
	Trip models.Trip
	Kind EndpointKind
	// DisplayName is "prenom nom", or the raw email when the owner is unknown.
	DisplayName  string
	ProfileEmail string
	VideoID      string
}

// Marker is one map pin shared by every endpoint at Coordinate.
type Marker struct {
	Coordinate models.Coordinate
	Entries    []Entry
}

// Polyline joins a trip's origin and destination.
type Polyline struct {
	From  models.Coordinate
	To    models.Coordinate
	Label string
}

// TripListItem is a row of the trip list shown under the map.
type TripListItem struct {
	Trip         models.Trip
	DisplayName  string
	ProfileEmail string
	VideoID      string
}

// RenderModel is everything needed to draw the trip map.
type RenderModel struct {
	Initial View
	Tile    Tile
	Markers []Marker
	Lines   []Polyline
	Bounds  models.Bounds
	// FitBounds is true when at least one endpoint resolved; the renderer
	// should then fit Bounds with Padding instead of keeping Initial.
	FitBounds bool
	Padding   int
	Trips     []TripListItem
	// Unresolved counts endpoints whose address could not be geocoded.
	Unresolved int
}

// SearchResult is a located address to center on and pin.
type SearchResult struct {
	Query      string
	Coordinate models.Coordinate
	Zoom       int
	Label      string
}

var youtubeID = regexp.MustCompile(`(?:v=|youtu.be/)([\w-]{11})`)

// VideoID extracts the 11-character YouTube id from a watch or youtu.be URL.
func VideoID(video string) string {
	m := youtubeID.FindStringSubmatch(video)
	if m == nil {
		return ""
	}
	return m[1]
}

// EmbedURL is the iframe URL for a YouTube id, or "" for an empty id.
func EmbedURL(id string) string {
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}
