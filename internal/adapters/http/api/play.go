package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/molkky/internal/domain/types"
)

// requestIDHeader carries the idempotency key when the body does not.
const requestIDHeader = "Idempotency-Key"

// PlayDependencies defines the interface for in-round edits.
type PlayDependencies interface {
	RecordAttempt(ctx context.Context, roundID, requestID string, score int) (types.AttemptResult, error)
	Undo(ctx context.Context, roundID string) (types.Round, error)
	Redo(ctx context.Context, roundID string) (types.Round, error)
	ToggleSort(ctx context.Context, roundID string) (types.Round, error)
	SetEndedEarly(ctx context.Context, roundID string, ended bool) (types.Round, error)
}

// PlayHandler handles throws and round edits.
type PlayHandler struct {
	deps PlayDependencies
}

// NewPlayHandler creates a new play handler.
func NewPlayHandler(deps PlayDependencies) *PlayHandler {
	return &PlayHandler{deps: deps}
}

type attemptRequest struct {
	Score     *int   `json:"score"`
	RequestID string `json:"request_id"`
}

// HandleAttempt handles POST /rounds/{id}/attempts requests.
func (h *PlayHandler) HandleAttempt(w http.ResponseWriter, r *http.Request) {
	const op = "api.record_attempt"
	var req attemptRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	if req.Score == nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, errors.New("missing score")))
		return
	}
	if req.RequestID == "" {
		req.RequestID = r.Header.Get(requestIDHeader)
	}
	res, err := h.deps.RecordAttempt(r.Context(), r.PathValue("id"), req.RequestID, *req.Score)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleUndo handles POST /rounds/{id}/undo requests.
func (h *PlayHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "api.undo", func() (types.Round, error) {
		return h.deps.Undo(r.Context(), r.PathValue("id"))
	})
}

// HandleRedo handles POST /rounds/{id}/redo requests.
func (h *PlayHandler) HandleRedo(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "api.redo", func() (types.Round, error) {
		return h.deps.Redo(r.Context(), r.PathValue("id"))
	})
}

// HandleSort handles POST /rounds/{id}/sort requests.
func (h *PlayHandler) HandleSort(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "api.sort", func() (types.Round, error) {
		return h.deps.ToggleSort(r.Context(), r.PathValue("id"))
	})
}

type endRequest struct {
	Ended *bool `json:"ended"`
}

// HandleEnd handles POST /rounds/{id}/end requests. Without a body the
// round is ended.
func (h *PlayHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	const op = "api.end_round"
	var req endRequest
	if err := decodeBody(w, r, op, &req); err != nil {
		writeFailure(w, op, err)
		return
	}
	ended := req.Ended == nil || *req.Ended
	h.respond(w, op, func() (types.Round, error) {
		return h.deps.SetEndedEarly(r.Context(), r.PathValue("id"), ended)
	})
}

func (h *PlayHandler) respond(w http.ResponseWriter, op string, call func() (types.Round, error)) {
	round, err := call()
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}
