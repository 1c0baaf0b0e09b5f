package geo

import (
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// MetersPerMile converts the upstream search radius (miles) to meters.
const MetersPerMile = 1609.344

// Coordinates is a latitude/longitude pair in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Point returns the orb representation (lon, lat order).
func (c Coordinates) Point() orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// FromPoint converts an orb point back to Coordinates.
func FromPoint(p orb.Point) Coordinates {
	return Coordinates{Lat: p.Lat(), Lon: p.Lon()}
}

// Valid reports whether latitude is in [-90,90] and longitude in [-180,180].
func (c Coordinates) Valid() bool {
	return ValidateCoordinates(c.Lat, c.Lon)
}

// ValidateCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// DistanceMeters returns the great-circle distance between two points.
func DistanceMeters(a, b Coordinates) float64 {
	return orbgeo.DistanceHaversine(a.Point(), b.Point())
}

// MilesToMeters converts a radius in miles to meters.
func MilesToMeters(miles float64) float64 {
	return miles * MetersPerMile
}

// Bounds is the box a map should fit to show a search radius.
type Bounds struct {
	SouthWest Coordinates
	NorthEast Coordinates
}

// BoundsAround returns the bounding box of a circle of radiusMiles around center.
func BoundsAround(center Coordinates, radiusMiles float64) Bounds {
	b := orbgeo.NewBoundAroundPoint(center.Point(), MilesToMeters(radiusMiles))
	return Bounds{
		SouthWest: FromPoint(b.Min),
		NorthEast: FromPoint(b.Max),
	}
}
