package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Gateway calls the chain gateway's read-only JSON endpoint. It is the only
// component that talks to the ledger; everything above it sees the Client
// interface. Safe for concurrent use.
type Gateway struct {
	url   string
	httpc *http.Client
}

// NewGateway builds a client for the gateway at url. The timeout bounds each
// individual call; a timed-out call surfaces as an error and the fetch layer
// degrades it to an empty history.
func NewGateway(url string, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Gateway{
		url:   url,
		httpc: &http.Client{Timeout: timeout},
	}
}

type gatewayReq struct {
	ID     string   `json:"id"`
	Method string   `json:"method"`
	Params []string `json:"params"`
}

type gatewayResp struct {
	ID     string          `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error,omitempty"`
}

// GetUserCrops implements Client.
func (g *Gateway) GetUserCrops(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	if err := g.call(ctx, "getUserCrops", []string{userID}, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// GetCropHistory implements Client.
func (g *Gateway) GetCropHistory(ctx context.Context, cropID string) ([]RawEvent, error) {
	var raws []RawEvent
	if err := g.call(ctx, "getCropHistory", []string{cropID}, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

func (g *Gateway) call(ctx context.Context, method string, params []string, out any) error {
	body, err := json.Marshal(gatewayReq{
		ID:     uuid.NewString(),
		Method: method,
		Params: params,
	})
	if err != nil {
		return fmt.Errorf("marshal gateway req: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/call", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("gateway call failed: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway non-2xx: %s, body: %s", resp.Status, string(data))
	}

	var env gatewayResp
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode gateway resp: %w", err)
	}
	if env.Error != "" {
		return fmt.Errorf("gateway %s: %s", method, env.Error)
	}
	if len(env.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}
