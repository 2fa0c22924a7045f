// Package scheduler coordinates agent work against a single expensive
// resource slot. It is structured into small files by concern:
//
//   - coordinator.go: core Coordinator type, Submit/Status, drain loop.
//   - config.go: Config and package defaults; New applies defaults.
//   - types.go: Priority, Request, Stats, coordinator state.
//   - queue.go: priority queue with sequence tie-breaking.
//   - resource.go: single-slot resource state machine and idle eviction.
//   - loader.go: ResourceLoader boundary; loader_exec.go runs external
//     commands, loader_llama.go (tag 'llama') loads models in-process.
//   - executor.go: Executor boundary; HTTPExecutor posts tasks to agents.
//   - errors.go: error types and helpers (IsAgentNotFound, IsQueueFull, ...).
//   - events.go: lifecycle event publisher used for requester notification.
//   - metrics.go: prometheus counters/gauges.
//
// At most one drain loop and at most one load/unload operation exist at any
// time. Both are enforced by construction (the coordinator's atomic
// processing flag and the resource manager's busy guard), so there is no
// runtime error class for a concurrency violation; such a state would be a
// programming error, not a recoverable condition.
//
// External packages should treat this package as the orchestration layer and
// use public methods only (New, Submit, Status, Agents, Close). Internal
// types are subject to change.
package scheduler
