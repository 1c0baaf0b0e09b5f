package restaurant

import (
	"slices"

	"github.com/kailas-cloud/nearbite/internal/domain/geo"
)

// Restaurant is one normalized search result. It is immutable after New.
type Restaurant struct {
	name     string
	street   string
	phone    string
	website  string
	cuisines []string
	location geo.Coordinates
}

// New creates a restaurant record. The cuisines slice is copied.
func New(
	name, street, phone, website string,
	cuisines []string, location geo.Coordinates,
) Restaurant {
	return Restaurant{
		name:     name,
		street:   street,
		phone:    phone,
		website:  website,
		cuisines: slices.Clone(cuisines),
		location: location,
	}
}

// Name returns the restaurant name.
func (r Restaurant) Name() string { return r.name }

// Street returns the street address line.
func (r Restaurant) Street() string { return r.street }

// Phone returns the phone number as provided upstream.
func (r Restaurant) Phone() string { return r.phone }

// Website returns the website URL string.
func (r Restaurant) Website() string { return r.website }

// Cuisines returns a copy of the cuisine tags in upstream order.
func (r Restaurant) Cuisines() []string { return slices.Clone(r.cuisines) }

// Location returns the restaurant coordinates.
func (r Restaurant) Location() geo.Coordinates { return r.location }

// HasCuisine reports whether tag is one of the restaurant's cuisines (exact match).
func (r Restaurant) HasCuisine(tag string) bool {
	return slices.Contains(r.cuisines, tag)
}
