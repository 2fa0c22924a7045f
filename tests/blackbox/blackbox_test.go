package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	cleanup := func() { _ = ln.Close() }
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	return port, cleanup
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	bbDir := filepath.Dir(thisFile)
	return filepath.Dir(filepath.Dir(bbDir))
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	outDir := t.TempDir()
	binPath := filepath.Join(outDir, "agentd")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/agentd")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

// startAgentEndpoint runs an in-process HTTP server standing in for the
// agents' task endpoint.
func startAgentEndpoint(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		fmt.Fprint(w, "ack")
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeFixtures writes an agents registry and a config file that swaps the
// loader commands for /bin/true, and returns both paths.
func writeFixtures(t *testing.T, endpoint string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	agents := fmt.Sprintf(`agents:
  - id: alpha
    resource: qwen-14b
    endpoint: %s
  - id: gamma
    resource: llama-7b
    endpoint: %s
resources:
  - id: qwen-14b
    cost_mb: 9000
  - id: llama-7b
    cost_mb: 4000
`, endpoint, endpoint)
	agentsPath := filepath.Join(dir, "agents.yaml")
	if err := os.WriteFile(agentsPath, []byte(agents), 0o644); err != nil {
		t.Fatalf("write agents file: %v", err)
	}
	cfg := `load_command: ["true"]
unload_command: ["true"]
`
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return agentsPath, cfgPath
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18080
}

func startServer(t *testing.T, bin, agentsPath, cfgPath string, port int) *serverProc {
	t.Helper()
	addr := fmt.Sprintf(":%d", port)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	cmd := exec.Command(bin, "--addr", addr, "--agents", agentsPath, "--config", cfgPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	// Wait for healthz
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			_ = cmd.Process.Kill()
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	sp := &serverProc{cmd: cmd, base: base}
	t.Cleanup(func() { _ = cmd.Process.Kill() })
	return sp
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func TestBlackbox_Flow(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("loader commands assume a unix 'true' binary")
	}
	bin := buildBinary(t)
	agent := startAgentEndpoint(t)
	agentsPath, cfgPath := writeFixtures(t, agent.URL)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, agentsPath, cfgPath, port)

	// /healthz
	resp, body := get(t, sp.base+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/healthz %d %s", resp.StatusCode, string(body))
	}

	// /agents lists the registry
	resp, body = get(t, sp.base+"/agents")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/agents %d %s", resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("/agents content-type=%s", ct)
	}
	var agentsResp struct {
		Agents []struct {
			ID string `json:"id"`
		} `json:"agents"`
	}
	if err := json.Unmarshal(body, &agentsResp); err != nil {
		t.Fatalf("/agents json: %v body=%s", err, string(body))
	}
	if len(agentsResp.Agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(agentsResp.Agents))
	}

	// Boot-time /status: nothing loaded, nothing queued
	resp, body = get(t, sp.base+"/status")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/status %d %s", resp.StatusCode, string(body))
	}
	var st struct {
		QueueSize      int     `json:"queue_size"`
		LoadedResource *string `json:"loaded_resource"`
		Stats          struct {
			TotalSubmitted uint64 `json:"total_submitted"`
			TotalCompleted uint64 `json:"total_completed"`
			TotalFailed    uint64 `json:"total_failed"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(body, &st); err != nil {
		t.Fatalf("/status json: %v body=%s", err, string(body))
	}
	if st.QueueSize != 0 || st.LoadedResource != nil {
		t.Fatalf("/status expected idle boot snapshot, got %s", string(body))
	}

	// Submit a task, expect 202 with a request id
	resp, body = postJSON(t, sp.base+"/submit", []byte(`{"agent":"alpha","task":"hello"}`))
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("/submit %d %s", resp.StatusCode, string(body))
	}
	var ack struct {
		Accepted  bool   `json:"accepted"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(body, &ack); err != nil {
		t.Fatalf("/submit json: %v body=%s", err, string(body))
	}
	if !ack.Accepted || ack.RequestID == "" {
		t.Fatalf("/submit expected accepted ack, got %s", string(body))
	}

	// Completion shows up in /status along with the loaded resource
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, body = get(t, sp.base+"/status")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("/status %d %s", resp.StatusCode, string(body))
		}
		if err := json.Unmarshal(body, &st); err != nil {
			t.Fatalf("/status json: %v body=%s", err, string(body))
		}
		if st.Stats.TotalCompleted == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("request did not complete in time; last=%s", string(body))
		}
		time.Sleep(25 * time.Millisecond)
	}
	if st.Stats.TotalFailed != 0 {
		t.Fatalf("unexpected failures: %s", string(body))
	}
	if st.LoadedResource == nil || *st.LoadedResource != "qwen-14b" {
		t.Fatalf("expected qwen-14b loaded, got %s", string(body))
	}

	// /metrics exposes the scheduler counters
	resp, body = get(t, sp.base+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/metrics %d", resp.StatusCode)
	}
	if !bytes.Contains(body, []byte("agentd_scheduler_requests_submitted_total")) {
		t.Fatalf("/metrics missing scheduler counters")
	}
}

func TestBlackbox_Submit_UnknownAgent_404(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("loader commands assume a unix 'true' binary")
	}
	bin := buildBinary(t)
	agent := startAgentEndpoint(t)
	agentsPath, cfgPath := writeFixtures(t, agent.URL)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, agentsPath, cfgPath, port)

	resp, body := postJSON(t, sp.base+"/submit", []byte(`{"agent":"zeus","task":"hi"}`))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d, body=%s", resp.StatusCode, string(body))
	}
	if !bytes.Contains(body, []byte(`"accepted":false`)) {
		t.Fatalf("expected rejection body, got %s", string(body))
	}
}
