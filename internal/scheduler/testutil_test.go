package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"agentd/internal/registry"
	"agentd/pkg/types"
)

// testRegistry: agents a,b -> resource M; agent c -> resource N.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New(
		[]types.AgentSpec{
			{ID: "a", Resource: "M"},
			{ID: "b", Resource: "M"},
			{ID: "c", Resource: "N"},
		},
		[]types.ResourceSpec{
			{ID: "M", CostMB: 100},
			{ID: "N", CostMB: 50},
		},
	)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

// fakeLoader records load/unload calls in order and can fail per resource.
// When gate is non-nil every Load blocks until the gate is closed; started
// is signaled at call entry.
type fakeLoader struct {
	mu        sync.Mutex
	calls     []string
	loadErr   map[string]error
	unloadErr map[string]error
	gate      chan struct{}
	started   chan string
}

func (f *fakeLoader) Load(ctx context.Context, res types.ResourceSpec) error {
	if f.started != nil {
		select {
		case f.started <- res.ID:
		default:
		}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, "load:"+res.ID)
	err := f.loadErr[res.ID]
	f.mu.Unlock()
	return err
}

func (f *fakeLoader) Unload(ctx context.Context, res types.ResourceSpec) error {
	f.mu.Lock()
	f.calls = append(f.calls, "unload:"+res.ID)
	err := f.unloadErr[res.ID]
	f.mu.Unlock()
	return err
}

func (f *fakeLoader) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// fakeExecutor records executed agents in order. When gate is non-nil every
// Execute blocks until the gate is closed; started is signaled at call entry.
type fakeExecutor struct {
	mu      sync.Mutex
	calls   []string
	errFor  map[string]error
	gate    chan struct{}
	started chan string
}

func (f *fakeExecutor) Execute(ctx context.Context, agent types.AgentSpec, task string) (string, error) {
	if f.started != nil {
		select {
		case f.started <- agent.ID:
		default:
		}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, agent.ID)
	err := f.errFor[agent.ID]
	f.mu.Unlock()
	if err != nil {
		return "", err
	}
	return "done: " + task, nil
}

func (f *fakeExecutor) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, d time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
