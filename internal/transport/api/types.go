// Package api holds the HTTP API wire types and the chi routing that binds
// request parameters before calling a ServerInterface.
package api

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeInvalidCoordinates ErrorResponseCode = "invalid_coordinates"
	ErrorResponseCodeInvalidOptions     ErrorResponseCode = "invalid_options"
	ErrorResponseCodeUpstreamError      ErrorResponseCode = "upstream_error"
	ErrorResponseCodeSearchSuperseded   ErrorResponseCode = "search_superseded"
	ErrorResponseCodeCanceled           ErrorResponseCode = "canceled"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// UpstreamErrorResponse is returned when the restaurant provider fails.
// Cards is always empty so clients can render the empty state directly.
type UpstreamErrorResponse struct {
	Code           ErrorResponseCode `json:"code"`
	Message        string            `json:"message"`
	UpstreamStatus int               `json:"upstream_status,omitempty"`
	Cards          []Card            `json:"cards"`
}

// HealthResponse reports component status.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// MapSettings configures the map widget.
type MapSettings struct {
	Token string  `json:"token"`
	Zoom  float64 `json:"zoom"`
}

// SearchOptions is the current search configuration.
type SearchOptions struct {
	SearchDistance     float64  `json:"search_distance"`
	SearchTags         []string `json:"search_tags"`
	OnlyShowTagMatches bool     `json:"only_show_tag_matches"`
}

// UpdateOptionsRequest is a partial options update. Omitted fields are unchanged.
type UpdateOptionsRequest struct {
	SearchDistance     *float64  `json:"search_distance,omitempty"`
	SearchTags         *[]string `json:"search_tags,omitempty"`
	OnlyShowTagMatches *bool     `json:"only_show_tag_matches,omitempty"`
}

// LatLon is a coordinate pair.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is the box the map should fit after a search.
type Bounds struct {
	SouthWest LatLon `json:"south_west"`
	NorthEast LatLon `json:"north_east"`
}

// Card is one restaurant result. Marker is where the map flies when the card is clicked.
type Card struct {
	Name           string   `json:"name"`
	Street         string   `json:"street"`
	Phone          string   `json:"phone"`
	Website        string   `json:"website"`
	Cuisines       []string `json:"cuisines"`
	Marker         LatLon   `json:"marker"`
	DistanceMeters float64  `json:"distance_meters"`
}

// SearchResponse is a completed search.
type SearchResponse struct {
	SearchID string        `json:"search_id"`
	Source   string        `json:"source"`
	Center   LatLon        `json:"center"`
	Bounds   Bounds        `json:"bounds"`
	Zoom     float64       `json:"zoom"`
	Options  SearchOptions `json:"options"`
	Cards    []Card        `json:"cards"`
}

// SearchParamsSource selects the restaurant source.
type SearchParamsSource string

// Sources.
const (
	SearchParamsSourceRemote SearchParamsSource = "remote"
	SearchParamsSourceLocal  SearchParamsSource = "local"
)

// SearchParams are the bound parameters of GET /api/search.
type SearchParams struct {
	Lat        float64
	Lon        float64
	Source     *SearchParamsSource
	XSessionID *string
}
