package models

import "strconv"

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Key is the canonical "lat,lon" form used to group identical coordinates.
// Floats use the shortest representation that round-trips, so only exactly
// equal coordinates share a key.
func (c Coordinate) Key() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func (c Coordinate) String() string {
	return c.Key()
}

// Bounds is the smallest box containing every extended coordinate.
// The zero value is empty and Valid reports false until Extend is called.
type Bounds struct {
	SouthWest Coordinate `json:"southWest"`
	NorthEast Coordinate `json:"northEast"`
	set       bool
}

// Extend grows b to include c.
func (b *Bounds) Extend(c Coordinate) {
	if !b.set {
		b.SouthWest, b.NorthEast, b.set = c, c, true
		return
	}
	b.SouthWest.Lat = min(b.SouthWest.Lat, c.Lat)
	b.SouthWest.Lon = min(b.SouthWest.Lon, c.Lon)
	b.NorthEast.Lat = max(b.NorthEast.Lat, c.Lat)
	b.NorthEast.Lon = max(b.NorthEast.Lon, c.Lon)
}

func (b Bounds) Valid() bool {
	return b.set
}

// Center is the midpoint of the box.
func (b Bounds) Center() Coordinate {
	return Coordinate{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lon: (b.SouthWest.Lon + b.NorthEast.Lon) / 2,
	}
}
