package api

import (
	"context"
	"net/http"

	"github.com/okian/molkky/internal/domain/types"
)

// PlayerDependencies defines the interface for roster operations.
type PlayerDependencies interface {
	CreatePlayer(ctx context.Context, name string) (types.Player, error)
	ListPlayers(ctx context.Context) ([]types.Player, error)
	PlayerAwards(ctx context.Context, playerID string) (types.PlayerAwards, error)
}

// PlayersHandler handles roster requests.
type PlayersHandler struct {
	deps PlayerDependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayerDependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

type createPlayerRequest struct {
	Name string `json:"name"`
}

// HandleCreate handles POST /players requests.
func (h *PlayersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_player"
	var req createPlayerRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	p, err := h.deps.CreatePlayer(r.Context(), req.Name)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleList handles GET /players requests.
func (h *PlayersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	players, err := h.deps.ListPlayers(r.Context())
	if err != nil {
		writeFailure(w, "api.list_players", err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

// HandleAwards handles GET /players/{id}/awards requests.
func (h *PlayersHandler) HandleAwards(w http.ResponseWriter, r *http.Request) {
	awards, err := h.deps.PlayerAwards(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, "api.player_awards", err)
		return
	}
	writeJSON(w, http.StatusOK, awards)
}
