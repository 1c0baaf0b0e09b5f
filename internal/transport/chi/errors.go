package chi

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nearbite/internal/domain"
	logpkg "github.com/kailas-cloud/nearbite/internal/logger"
	gen "github.com/kailas-cloud/nearbite/internal/transport/api"
)

// statusClientClosedRequest is written when the caller went away mid-search.
const statusClientClosedRequest = 499

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Order matters: a superseded search also carries the cancellation and,
// for the remote source, a network error.
func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		sentinelHandler(domain.ErrSearchSuperseded, http.StatusConflict, gen.ErrorResponseCodeSearchSuperseded),
		sentinelHandler(context.Canceled, statusClientClosedRequest, gen.ErrorResponseCodeCanceled),
		sentinelHandler(domain.ErrInvalidCoordinates, http.StatusBadRequest, gen.ErrorResponseCodeInvalidCoordinates),
		sentinelHandler(domain.ErrInvalidOptions, http.StatusBadRequest, gen.ErrorResponseCodeInvalidOptions),
		networkErrorHandler,
	}
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrSearchSuperseded,
		context.Canceled,
		domain.ErrInvalidCoordinates,
		domain.ErrInvalidOptions,
		domain.ErrNetwork,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code gen.ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// networkErrorHandler maps provider failures to 502 with an empty card list.
// The upstream URL stays in the logs.
func networkErrorHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrNetwork) {
		return false
	}
	resp := gen.UpstreamErrorResponse{
		Code:    gen.ErrorResponseCodeUpstreamError,
		Message: msg,
		Cards:   []gen.Card{},
	}
	var ne *domain.NetworkError
	if errors.As(err, &ne) {
		resp.UpstreamStatus = ne.StatusCode
	}
	writeJSON(w, http.StatusBadGateway, resp)
	return true
}

// handleDomainError writes the mapped response. Search failures are already
// logged by the finder; only unmapped errors are logged here.
func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	logpkg.FromContextOr(r.Context(), s.logger).Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error")
}
