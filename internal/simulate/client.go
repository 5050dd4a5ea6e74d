package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/molkky/internal/domain/types"
)

// ErrStatus is returned when the service answers with an unexpected status.
var ErrStatus = errors.New("unexpected status")

// Client talks to the scorekeeper HTTP API.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do sends a JSON request and decodes a JSON answer into out when the
// status is the wanted one.
func (c *Client) do(ctx context.Context, method, path string, body, out any, want int, headers ...string) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	if resp.StatusCode != want {
		var ae apiError
		_ = json.Unmarshal(data, &ae)
		return fmt.Errorf("%w: %s %s: %d %s %s", ErrStatus, method, path, resp.StatusCode, ae.Code, ae.Message)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Health checks that the service answers on /healthz.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil, http.StatusOK)
}

// CreatePlayer adds a player to the roster.
func (c *Client) CreatePlayer(ctx context.Context, name string) (types.Player, error) {
	var p types.Player
	err := c.do(ctx, http.MethodPost, "/players", map[string]string{"name": name}, &p, http.StatusCreated)
	return p, err
}

// CreateRound starts a round with the service's default rules.
func (c *Client) CreateRound(ctx context.Context, playerIDs []string) (types.Round, error) {
	var r types.Round
	err := c.do(ctx, http.MethodPost, "/rounds", map[string]any{"player_ids": playerIDs}, &r, http.StatusCreated)
	return r, err
}

// Attempt scores a throw under requestID.
func (c *Client) Attempt(ctx context.Context, roundID, requestID string, score int) (types.AttemptResult, error) {
	var res types.AttemptResult
	body := map[string]any{"score": score}
	err := c.do(ctx, http.MethodPost, "/rounds/"+roundID+"/attempts", body, &res, http.StatusOK,
		"Idempotency-Key", requestID)
	return res, err
}

// Undo takes back the last throw.
func (c *Client) Undo(ctx context.Context, roundID string) (types.Round, error) {
	return c.roundOp(ctx, roundID, "undo")
}

// Redo replays the last undone throw.
func (c *Client) Redo(ctx context.Context, roundID string) (types.Round, error) {
	return c.roundOp(ctx, roundID, "redo")
}

// Rematch starts the next round from a finished one.
func (c *Client) Rematch(ctx context.Context, roundID string) (types.Round, error) {
	var r types.Round
	err := c.do(ctx, http.MethodPost, "/rounds/"+roundID+"/rematch", nil, &r, http.StatusCreated)
	return r, err
}

// End ends a round by hand.
func (c *Client) End(ctx context.Context, roundID string) (types.Round, error) {
	return c.roundOp(ctx, roundID, "end")
}

// Standings returns the placements of a round.
func (c *Client) Standings(ctx context.Context, roundID string) ([]types.Standing, error) {
	var out []types.Standing
	err := c.do(ctx, http.MethodGet, "/rounds/"+roundID+"/standings", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) roundOp(ctx context.Context, roundID, op string) (types.Round, error) {
	var r types.Round
	err := c.do(ctx, http.MethodPost, "/rounds/"+roundID+"/"+op, nil, &r, http.StatusOK)
	return r, err
}
