package scheduler

import (
	"fmt"
	"strings"
	"time"
)

// Priority orders requests. Lower rank is dequeued first.
type Priority int

const (
	PriorityCritical Priority = iota // user waiting now
	PriorityHigh                     // time-sensitive
	PriorityNormal                   // background
	PriorityLow                      // batch jobs
)

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// ParsePriority parses a priority name. Empty means normal.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityNormal, nil
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "normal":
		return PriorityNormal, nil
	case "low":
		return PriorityLow, nil
	default:
		return PriorityNormal, fmt.Errorf("unknown priority: %q", s)
	}
}

// Request is one immutable unit of work. Ordering is computed from Priority
// and seq, never mutated in place.
type Request struct {
	ID          string
	AgentID     string
	Task        string
	Priority    Priority
	Requester   string
	SubmittedAt time.Time

	// seq is assigned atomically at submission, before the push becomes
	// visible, and breaks ties between equal priorities deterministically.
	seq uint64
}

// Ack is returned by Submit.
type Ack struct {
	RequestID string
	QueueSize int
}

// Stats are the coordinator's running counters. The average wait is a
// running mean, folded incrementally on each completion.
type Stats struct {
	TotalSubmitted     uint64
	TotalCompleted     uint64
	TotalFailed        uint64
	AverageWaitSeconds float64
	LoadsTotal         uint64
	UnloadsTotal       uint64
	EvictionsTotal     uint64
}
