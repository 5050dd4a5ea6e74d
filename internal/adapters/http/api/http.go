// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	repository "github.com/okian/molkky/internal/adapters/repository"
	service "github.com/okian/molkky/internal/app"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/pkg/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PlayerDependencies
	RoundDependencies
	PlayDependencies
}

// Server wires HTTP routes for the scorekeeper API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	playersHandler *PlayersHandler
	roundsHandler  *RoundsHandler
	playHandler    *PlayHandler
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		playersHandler: NewPlayersHandler(deps),
		roundsHandler:  NewRoundsHandler(deps),
		playHandler:    NewPlayHandler(deps),
		logger:         logger.Named("http"),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	routes := []struct {
		pattern string
		handler http.HandlerFunc
	}{
		{"GET /healthz", s.healthHandler.HandleHealth},
		{"GET /stats", s.statsHandler.HandleStats},

		{"POST /players", s.playersHandler.HandleCreate},
		{"GET /players", s.playersHandler.HandleList},
		{"GET /players/{id}/awards", s.playersHandler.HandleAwards},

		{"POST /rounds", s.roundsHandler.HandleCreate},
		{"GET /rounds", s.roundsHandler.HandleList},
		{"GET /rounds/{id}", s.roundsHandler.HandleGet},
		{"DELETE /rounds/{id}", s.roundsHandler.HandleDelete},
		{"POST /rounds/{id}/rematch", s.roundsHandler.HandleRematch},
		{"GET /rounds/{id}/standings", s.roundsHandler.HandleStandings},
		{"GET /rounds/{id}/awards", s.roundsHandler.HandleAwards},

		{"POST /rounds/{id}/attempts", s.playHandler.HandleAttempt},
		{"POST /rounds/{id}/undo", s.playHandler.HandleUndo},
		{"POST /rounds/{id}/redo", s.playHandler.HandleRedo},
		{"POST /rounds/{id}/sort", s.playHandler.HandleSort},
		{"POST /rounds/{id}/end", s.playHandler.HandleEnd},
	}
	for _, rt := range routes {
		mux.HandleFunc(rt.pattern, MetricsMiddleware(LoggingMiddleware(rt.handler, s.logger), rt.pattern))
	}
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps an error from the service layer to a status and code.
func writeFailure(w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	writeError(w, status, code, Wrap(op, err))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, round.ErrInvalidScore):
		return http.StatusBadRequest, "invalid_score"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrRoundEnded):
		return http.StatusConflict, "round_ended"
	case errors.Is(err, service.ErrRoundInProgress):
		return http.StatusConflict, "round_in_progress"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, op string, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return WrapKind(op, ErrBadRequest, err)
	}
	return nil
}
