package scheduler

// Event represents a coordinator lifecycle event.
// Minimal and stable: name plus the ids involved and optional fields.
type Event struct {
	Name       string
	RequestID  string
	AgentID    string
	ResourceID string
	Requester  string
	Fields     map[string]any
}

// Event names emitted by the coordinator and resource manager.
const (
	EventRequestQueued   = "request_queued"
	EventRequestStart    = "request_start"
	EventRequestDone     = "request_done"
	EventRequestFailed   = "request_failed"
	EventLoadStart       = "load_start"
	EventLoadDone        = "load_done"
	EventLoadFailed      = "load_failed"
	EventUnloadStart     = "unload_start"
	EventUnloadDone      = "unload_done"
	EventUnloadFailed    = "unload_failed"
	EventResourceEvicted = "resource_evicted"
)

// EventPublisher receives events from the coordinator. Implementations should
// be lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
