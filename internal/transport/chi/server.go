package chi

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/internal/domain/card"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/options"
	gen "github.com/kailas-cloud/nearbite/internal/transport/api"
	finderuc "github.com/kailas-cloud/nearbite/internal/usecase/finder"
	healthuc "github.com/kailas-cloud/nearbite/internal/usecase/health"
)

// Server implements api.ServerInterface.
type Server struct {
	finder        *finderuc.Controller
	health        *healthuc.Service
	mapSettings   gen.MapSettings
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ gen.ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(
	finder *finderuc.Controller,
	health *healthuc.Service,
	mapSettings gen.MapSettings,
	logger *zap.Logger,
) *Server {
	s := &Server{
		finder:      finder,
		health:      health,
		mapSettings: mapSettings,
		logger:      logger,
	}
	s.errorHandlers = defaultErrorHandlers()
	return s
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, gen.HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// GetMapSettings handles GET /api/map.
func (s *Server) GetMapSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.mapSettings)
}

// GetOptions handles GET /api/options.
func (s *Server) GetOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, optionsToGen(s.finder.Options()))
}

// UpdateOptions handles PUT /api/options.
func (s *Server) UpdateOptions(w http.ResponseWriter, r *http.Request) {
	var req gen.UpdateOptionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := options.NewPatch(req.SearchDistance, req.SearchTags, req.OnlyShowTagMatches)
	if err != nil {
		writeError(w, http.StatusBadRequest, gen.ErrorResponseCodeInvalidOptions, err.Error())
		return
	}

	updated, err := s.finder.Update(p)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, optionsToGen(updated))
}

// Search handles GET /api/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request, params gen.SearchParams) {
	src := finderuc.SourceRemote
	if params.Source != nil {
		src = finderuc.Source(*params.Source)
	}
	session := ""
	if params.XSessionID != nil {
		session = *params.XSessionID
	}

	out, err := s.finder.Search(r.Context(), session, src, geo.Coordinates{Lat: params.Lat, Lon: params.Lon})
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, outcomeToGen(out))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code gen.ErrorResponseCode, message string) {
	writeJSON(w, status, gen.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func optionsToGen(o options.Options) gen.SearchOptions {
	return gen.SearchOptions{
		SearchDistance:     o.SearchDistance(),
		SearchTags:         o.SearchTags().Sorted(),
		OnlyShowTagMatches: o.OnlyShowTagMatches(),
	}
}

func latLon(c geo.Coordinates) gen.LatLon {
	return gen.LatLon{Lat: c.Lat, Lon: c.Lon}
}

func cardToGen(c card.Card) gen.Card {
	cuisines := c.Cuisines
	if cuisines == nil {
		cuisines = []string{}
	}
	return gen.Card{
		Name:           c.Name,
		Street:         c.Street,
		Phone:          c.Phone,
		Website:        c.Website,
		Cuisines:       cuisines,
		Marker:         gen.LatLon{Lat: c.Marker.Lat, Lon: c.Marker.Lon},
		DistanceMeters: c.DistanceMeters,
	}
}

func outcomeToGen(out finderuc.Outcome) gen.SearchResponse {
	cards := make([]gen.Card, len(out.Cards))
	for i, c := range out.Cards {
		cards[i] = cardToGen(c)
	}
	return gen.SearchResponse{
		SearchID: out.ID.String(),
		Source:   string(out.Source),
		Center:   latLon(out.Center),
		Bounds: gen.Bounds{
			SouthWest: latLon(out.Bounds.SouthWest),
			NorthEast: latLon(out.Bounds.NorthEast),
		},
		Zoom:    out.Zoom,
		Options: optionsToGen(out.Options),
		Cards:   cards,
	}
}
