package scheduler

import (
	"context"

	"agentd/pkg/types"
)

// ResourceLoader realizes loading and unloading of a resource. Both
// operations may be arbitrarily slow and may fail; the coordinator never
// assumes success. Implementations must return when the context is canceled.
type ResourceLoader interface {
	Load(ctx context.Context, res types.ResourceSpec) error
	Unload(ctx context.Context, res types.ResourceSpec) error
}

// Executor runs a task against an agent once its resource is loaded. The
// only contract is "runs to completion or fails"; the result is opaque.
type Executor interface {
	Execute(ctx context.Context, agent types.AgentSpec, task string) (string, error)
}
