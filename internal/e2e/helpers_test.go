package e2e

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"agentd/internal/httpapi"
	"agentd/internal/registry"
	"agentd/internal/scheduler"
	"agentd/pkg/types"
)

// writeAgentsFile writes a YAML agents file to a temp dir and returns its path.
// Agents alpha,beta run on resource qwen-14b; agent gamma runs on llama-7b.
func writeAgentsFile(t *testing.T) string {
	t.Helper()
	body := `agents:
  - id: alpha
    resource: qwen-14b
  - id: beta
    resource: qwen-14b
  - id: gamma
    resource: llama-7b
resources:
  - id: qwen-14b
    cost_mb: 9000
  - id: llama-7b
    cost_mb: 4000
`
	p := filepath.Join(t.TempDir(), "agents.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write agents file %s: %v", p, err)
	}
	return p
}

// fakeLoader records load/unload calls in order.
type fakeLoader struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeLoader) Load(ctx context.Context, res types.ResourceSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "load:"+res.ID)
	return nil
}

func (f *fakeLoader) Unload(ctx context.Context, res types.ResourceSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "unload:"+res.ID)
	return nil
}

func (f *fakeLoader) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fakeExecutor records executed agent ids in order. When gate is non-nil
// every Execute blocks until the gate is closed.
type fakeExecutor struct {
	mu    sync.Mutex
	calls []string
	gate  chan struct{}
}

func (f *fakeExecutor) Execute(ctx context.Context, agent types.AgentSpec, task string) (string, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, agent.ID)
	return "done: " + task, nil
}

func (f *fakeExecutor) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// newServer loads a registry from disk, builds a coordinator over the fakes,
// and serves the full HTTP API from an in-process test server.
func newServer(t *testing.T, cfg scheduler.Config, loader scheduler.ResourceLoader, exec scheduler.Executor) (*httptest.Server, *scheduler.Coordinator) {
	t.Helper()
	reg, err := registry.Load(writeAgentsFile(t))
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	c := scheduler.New(reg, loader, exec, cfg)
	t.Cleanup(c.Close)
	srv := httptest.NewServer(httpapi.NewMux(c))
	t.Cleanup(srv.Close)
	return srv, c
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func submit(t *testing.T, srv *httptest.Server, agent, task, priority string) (*http.Response, []byte) {
	t.Helper()
	payload := fmt.Sprintf(`{"agent":%q,"task":%q`, agent, task)
	if priority != "" {
		payload += fmt.Sprintf(`,"priority":%q`, priority)
	}
	payload += "}"
	return httpPostJSON(t, srv.URL+"/submit", []byte(payload))
}

// waitFor polls cond until it returns true or the deadline elapses.
func waitFor(t *testing.T, d time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(d)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", msg)
		}
		time.Sleep(2 * time.Millisecond)
	}
}
