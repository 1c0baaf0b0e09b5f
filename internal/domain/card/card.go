// Package card turns restaurant records into display cards with map markers.
package card

import (
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
)

// SearchZoom is the map zoom level applied after a search completes.
const SearchZoom = 15.9

// Marker is where the map places a restaurant. Clicking the card recenters the map here.
type Marker struct {
	Lat float64
	Lon float64
}

// Card is the display form of one restaurant.
type Card struct {
	Name           string
	Street         string
	Phone          string
	Website        string
	Cuisines       []string
	Marker         Marker
	DistanceMeters float64
}

// New builds a card for r relative to the search center.
func New(r restaurant.Restaurant, center geo.Coordinates) Card {
	loc := r.Location()
	return Card{
		Name:           r.Name(),
		Street:         r.Street(),
		Phone:          r.Phone(),
		Website:        r.Website(),
		Cuisines:       r.Cuisines(),
		Marker:         Marker{Lat: loc.Lat, Lon: loc.Lon},
		DistanceMeters: geo.DistanceMeters(center, loc),
	}
}

// FromRestaurants builds cards in the order given.
func FromRestaurants(rs []restaurant.Restaurant, center geo.Coordinates) []Card {
	cards := make([]Card, len(rs))
	for i, r := range rs {
		cards[i] = New(r, center)
	}
	return cards
}

// Recenter returns the coordinates the map should fly to when c is clicked.
func (c Card) Recenter() geo.Coordinates {
	return geo.Coordinates{Lat: c.Marker.Lat, Lon: c.Marker.Lon}
}
