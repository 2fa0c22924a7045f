package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"agentd/pkg/types"
)

// buildRootCmd constructs the agentctl command tree against a running agentd.
func buildRootCmd() *cobra.Command {
	addr := os.Getenv("AGENTD_ADDR")
	if addr == "" {
		addr = "http://localhost:8080"
	}

	root := &cobra.Command{
		Use:           "agentctl",
		Short:         "Client for the agentd coordinator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&addr, "addr", addr, "Base URL of agentd (defaults AGENTD_ADDR or http://localhost:8080)")

	var agent, task, priority, requester string
	submit := &cobra.Command{
		Use:     "submit",
		Short:   "Submit a task for an agent",
		Example: "  agentctl submit --agent plutus --task \"generate invoices\" --priority critical",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := json.Marshal(types.SubmitRequest{
				Agent: agent, Task: task, Priority: priority, Requester: requester,
			})
			if err != nil {
				return err
			}
			resp, err := client().Post(strings.TrimRight(addr, "/")+"/submit", "application/json", bytes.NewReader(body))
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			var out types.SubmitResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			printJSON(out)
			if !out.Accepted {
				return fmt.Errorf("rejected: %s", out.Reason)
			}
			return nil
		},
	}
	submit.Flags().StringVar(&agent, "agent", "", "Agent id (required)")
	submit.Flags().StringVar(&task, "task", "", "Task description (required)")
	submit.Flags().StringVar(&priority, "priority", "", "Priority: critical|high|normal|low")
	submit.Flags().StringVar(&requester, "requester", "", "Requester id for attribution")
	_ = submit.MarkFlagRequired("agent")
	_ = submit.MarkFlagRequired("task")

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the coordinator status snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out types.StatusResponse
			if err := getJSON(strings.TrimRight(addr, "/")+"/status", &out); err != nil {
				return err
			}
			printJSON(out)
			return nil
		},
	}

	agents := &cobra.Command{
		Use:   "agents",
		Short: "List registered agents and their resources",
		RunE: func(cmd *cobra.Command, args []string) error {
			var out types.AgentsResponse
			if err := getJSON(strings.TrimRight(addr, "/")+"/agents", &out); err != nil {
				return err
			}
			printJSON(out)
			return nil
		},
	}

	root.AddCommand(submit, status, agents)
	return root
}

func client() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func getJSON(url string, out any) error {
	resp, err := client().Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s: %d: %s", url, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(b))
}
