package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agentd/pkg/types"
)

func TestHTTPExecutorPostsTask(t *testing.T) {
	var got taskPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Write([]byte("invoices generated"))
	}))
	defer srv.Close()

	e := NewHTTPExecutor(srv.Client())
	out, err := e.Execute(context.Background(), types.AgentSpec{ID: "plutus", Resource: "M", Endpoint: srv.URL}, "generate invoices")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out != "invoices generated" {
		t.Fatalf("result %q", out)
	}
	if got.Agent != "plutus" || got.Task != "generate invoices" {
		t.Fatalf("payload %+v", got)
	}
}

func TestHTTPExecutorNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	e := NewHTTPExecutor(srv.Client())
	if _, err := e.Execute(context.Background(), types.AgentSpec{ID: "a", Endpoint: srv.URL}, "t"); err == nil {
		t.Fatalf("expected error for 503")
	}
}

func TestHTTPExecutorRequiresEndpoint(t *testing.T) {
	e := NewHTTPExecutor(nil)
	if _, err := e.Execute(context.Background(), types.AgentSpec{ID: "a"}, "t"); err == nil {
		t.Fatalf("expected error for missing endpoint")
	}
}
