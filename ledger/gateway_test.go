package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGatewayGetCropHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/call" {
			t.Errorf("path = %q, want /call", r.URL.Path)
		}
		var req gatewayReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Method != "getCropHistory" {
			t.Errorf("method = %q", req.Method)
		}
		if req.ID == "" {
			t.Error("request id should be set")
		}
		if len(req.Params) != 1 || req.Params[0] != "C1" {
			t.Errorf("params = %v", req.Params)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": req.ID,
			"result": [][]any{
				{"Planted", "Nakuru", "Jane", 1700000000},
			},
		})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, time.Second)
	raws, err := g.GetCropHistory(context.Background(), "C1")
	if err != nil {
		t.Fatalf("GetCropHistory: %v", err)
	}
	if len(raws) != 1 {
		t.Fatalf("len = %d, want 1", len(raws))
	}
	if got := Decode(raws[0]).Status; got != "Planted" {
		t.Errorf("status = %q, want Planted", got)
	}
}

func TestGatewayGetUserCrops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "x",
			"result": []string{"C1", "C2"},
		})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, time.Second)
	ids, err := g.GetUserCrops(context.Background(), "U1")
	if err != nil {
		t.Fatalf("GetUserCrops: %v", err)
	}
	if len(ids) != 2 || ids[0] != "C1" || ids[1] != "C2" {
		t.Errorf("ids = %v", ids)
	}
}

func TestGatewayErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":    "x",
			"error": "contract reverted",
		})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, time.Second)
	if _, err := g.GetCropHistory(context.Background(), "C1"); err == nil {
		t.Error("expected error from gateway error envelope")
	}
}

func TestGatewayNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, time.Second)
	if _, err := g.GetUserCrops(context.Background(), "U1"); err == nil {
		t.Error("expected error on non-2xx")
	}
}

func TestGatewayTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	g := NewGateway(srv.URL, 50*time.Millisecond)
	start := time.Now()
	_, err := g.GetCropHistory(context.Background(), "C1")
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %s, should be bounded by client timeout", elapsed)
	}
}
