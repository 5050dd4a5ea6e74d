package api

import (
	"context"
	"net/http"

	"github.com/okian/molkky/internal/domain/types"
)

// RoundDependencies defines the interface for managing rounds.
type RoundDependencies interface {
	CreateRound(ctx context.Context, playerIDs []string, o types.RuleOverrides) (types.Round, error)
	Rematch(ctx context.Context, roundID string) (types.Round, error)
	GetRound(ctx context.Context, id string) (types.Round, error)
	ListRounds(ctx context.Context) ([]types.RoundSummary, error)
	DeleteRound(ctx context.Context, id string) error
	Standings(ctx context.Context, id string) ([]types.Standing, error)
	Awards(ctx context.Context, id string) ([]types.Award, error)
}

// RoundsHandler handles round requests.
type RoundsHandler struct {
	deps RoundDependencies
}

// NewRoundsHandler creates a new rounds handler.
func NewRoundsHandler(deps RoundDependencies) *RoundsHandler {
	return &RoundsHandler{deps: deps}
}

type createRoundRequest struct {
	PlayerIDs []string `json:"player_ids"`
	types.RuleOverrides
}

// HandleCreate handles POST /rounds requests.
func (h *RoundsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_round"
	var req createRoundRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	round, err := h.deps.CreateRound(r.Context(), req.PlayerIDs, req.RuleOverrides)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, round)
}

// HandleList handles GET /rounds requests.
func (h *RoundsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	rounds, err := h.deps.ListRounds(r.Context())
	if err != nil {
		writeFailure(w, "api.list_rounds", err)
		return
	}
	writeJSON(w, http.StatusOK, rounds)
}

// HandleGet handles GET /rounds/{id} requests.
func (h *RoundsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	round, err := h.deps.GetRound(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, "api.get_round", err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

// HandleDelete handles DELETE /rounds/{id} requests.
func (h *RoundsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteRound(r.Context(), r.PathValue("id")); err != nil {
		writeFailure(w, "api.delete_round", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRematch handles POST /rounds/{id}/rematch requests.
func (h *RoundsHandler) HandleRematch(w http.ResponseWriter, r *http.Request) {
	round, err := h.deps.Rematch(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, "api.rematch", err)
		return
	}
	writeJSON(w, http.StatusCreated, round)
}

// HandleStandings handles GET /rounds/{id}/standings requests.
func (h *RoundsHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.deps.Standings(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, "api.standings", err)
		return
	}
	writeJSON(w, http.StatusOK, standings)
}

// HandleAwards handles GET /rounds/{id}/awards requests.
func (h *RoundsHandler) HandleAwards(w http.ResponseWriter, r *http.Request) {
	awards, err := h.deps.Awards(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, "api.round_awards", err)
		return
	}
	writeJSON(w, http.StatusOK, awards)
}
