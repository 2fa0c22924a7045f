//go:build !llama

package scheduler

// This file provides a no-CGO stub for the llama loader. It is compiled when
// the 'llama' build tag is NOT set, keeping default builds and CI CGO-free.
// The real loader lives in loader_llama.go (tagged 'llama').

import (
	"context"

	"agentd/pkg/types"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

// LlamaLoader is a stub that satisfies ResourceLoader but refuses to load
// without the 'llama' build tag. This avoids any mocked behavior in
// production binaries built without CGO support.
type LlamaLoader struct {
	ctxSize int
	threads int
}

func NewLlamaLoader(ctxSize, threads int) *LlamaLoader {
	return &LlamaLoader{ctxSize: ctxSize, threads: threads}
}

func (l *LlamaLoader) Load(ctx context.Context, res types.ResourceSpec) error {
	return ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}

func (l *LlamaLoader) Unload(ctx context.Context, res types.ResourceSpec) error {
	// Nothing can be loaded in the stub.
	return nil
}
