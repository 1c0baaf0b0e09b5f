package nearbite

// SearchOptions controls one search.
type SearchOptions struct {
	// Distance is the radius in miles. Zero selects 5.
	Distance float64
	// Tags are cuisine names of interest, compared exactly.
	Tags []string
	// OnlyTagMatches drops restaurants without any of Tags. With no Tags
	// nothing matches.
	OnlyTagMatches bool
}

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Card is one restaurant result. Marker is where a map should fly when the
// card is selected.
type Card struct {
	Name           string
	Street         string
	Phone          string
	Website        string
	Cuisines       []string
	Marker         Point
	DistanceMeters float64
}

// Result is a completed search.
type Result struct {
	Center Point
	// SouthWest and NorthEast bound the search radius.
	SouthWest Point
	NorthEast Point
	Zoom      float64
	Cards     []Card
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
