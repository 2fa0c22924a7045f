package types

// SubmitRequest is the payload accepted by POST /submit.
type SubmitRequest struct {
	// Agent that should handle the task.
	// example: plutus
	Agent string `json:"agent" example:"plutus"`
	// Opaque task description; not interpreted by the coordinator.
	// example: Generate invoices for all outstanding work orders
	Task string `json:"task" example:"Generate invoices for all outstanding work orders"`
	// Priority: critical|high|normal|low. Defaults to normal.
	// example: critical
	Priority string `json:"priority,omitempty" example:"critical"`
	// Optional requester identity, carried through for attribution.
	// example: owner
	Requester string `json:"requester,omitempty" example:"owner"`
}

// SubmitResponse acknowledges (or rejects) a submission.
type SubmitResponse struct {
	// Whether the request was queued.
	// example: true
	Accepted bool `json:"accepted" example:"true"`
	// Assigned request id when accepted.
	// example: 5f3a0c9e-6c3f-4d27-8e33-0d1f9c6f2b71
	RequestID string `json:"request_id,omitempty" example:"5f3a0c9e-6c3f-4d27-8e33-0d1f9c6f2b71"`
	// Queue size right after the push.
	// example: 3
	QueueSize int `json:"queue_size,omitempty" example:"3"`
	// Rejection reason when not accepted.
	// example: agent not found: zeus
	Reason string `json:"reason,omitempty" example:"agent not found: zeus"`
}

// Stats carries the coordinator's running counters.
type Stats struct {
	// Total requests accepted by submit.
	// example: 42
	TotalSubmitted uint64 `json:"total_submitted" example:"42"`
	// Total requests that ran to completion.
	// example: 40
	TotalCompleted uint64 `json:"total_completed" example:"40"`
	// Total requests that failed during load or execution.
	// example: 2
	TotalFailed uint64 `json:"total_failed" example:"2"`
	// Running mean of queue wait time in seconds.
	// example: 1.25
	AverageWaitSeconds float64 `json:"average_wait_seconds" example:"1.25"`
	// Total resource load operations.
	// example: 7
	LoadsTotal uint64 `json:"loads_total" example:"7"`
	// Total resource unload operations (switches and evictions).
	// example: 6
	UnloadsTotal uint64 `json:"unloads_total" example:"6"`
	// Unloads triggered by idle eviction.
	// example: 3
	EvictionsTotal uint64 `json:"evictions_total" example:"3"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Number of requests waiting in the queue.
	// example: 0
	QueueSize int `json:"queue_size" example:"0"`
	// Whether the drain loop is currently active.
	// example: false
	IsProcessing bool `json:"is_processing" example:"false"`
	// Currently loaded resource, null when nothing is loaded.
	// example: qwen-14b
	LoadedResource *string `json:"loaded_resource" example:"qwen-14b"`
	// Running counters.
	Stats Stats `json:"stats"`
	// Uptime of the coordinator in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// AgentsResponse wraps the registered agents returned by GET /agents.
type AgentsResponse struct {
	// Registered agents with their resources.
	Agents []AgentSpec `json:"agents"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
