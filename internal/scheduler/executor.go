package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"agentd/pkg/types"
)

// maxResultBytes bounds how much of an agent's response body is retained.
const maxResultBytes = 64 << 10

// HTTPExecutor delivers tasks to an agent's HTTP endpoint and returns the
// response body as the opaque result.
type HTTPExecutor struct {
	client *http.Client
}

// NewHTTPExecutor builds an HTTPExecutor. A nil client gets a default with
// a 5 minute timeout; agent tasks can be long-running.
func NewHTTPExecutor(client *http.Client) *HTTPExecutor {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Minute}
	}
	return &HTTPExecutor{client: client}
}

type taskPayload struct {
	Agent string `json:"agent"`
	Task  string `json:"task"`
}

func (e *HTTPExecutor) Execute(ctx context.Context, agent types.AgentSpec, task string) (string, error) {
	if strings.TrimSpace(agent.Endpoint) == "" {
		return "", fmt.Errorf("agent %s has no endpoint", agent.ID)
	}
	body, err := json.Marshal(taskPayload{Agent: agent.ID, Task: task})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, agent.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(io.LimitReader(resp.Body, maxResultBytes))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("agent %s returned %d: %s", agent.ID, resp.StatusCode, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}
