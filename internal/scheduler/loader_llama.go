//go:build llama

package scheduler

// cgo link directives for the in-process llama loader.
// - We set an rpath of $ORIGIN so the runtime loader finds libllama.so and
//   libggml*.so in the same directory as the built Go binary (./bin).
// - We add -L${SRCDIR}/../../bin so the linker finds libllama.so at link time
//   when building the 'llama' variant.

/*
#cgo LDFLAGS: -Wl,-rpath,'$ORIGIN' -L${SRCDIR}/../../bin -lllama
*/
import "C"

import (
	"context"
	"errors"
	"strings"
	"sync"

	llama "github.com/go-skynet/go-llama.cpp"

	"agentd/pkg/types"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// LlamaLoader loads resources in-process via llama.cpp. Each resource's Path
// must point at a gguf file. Only one model is expected to be resident at a
// time; the resource manager guarantees that.
type LlamaLoader struct {
	ctxSize int
	threads int

	mu     sync.Mutex
	models map[string]*llama.LLama
}

func NewLlamaLoader(ctxSize, threads int) *LlamaLoader {
	return &LlamaLoader{ctxSize: ctxSize, threads: threads, models: make(map[string]*llama.LLama)}
}

func (l *LlamaLoader) Load(ctx context.Context, res types.ResourceSpec) error {
	if strings.TrimSpace(res.Path) == "" {
		return errors.New("resource path is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m, err := llama.New(res.Path, llama.SetContext(l.ctxSize))
	if err != nil {
		return err
	}
	l.mu.Lock()
	l.models[res.ID] = m
	l.mu.Unlock()
	return nil
}

func (l *LlamaLoader) Unload(ctx context.Context, res types.ResourceSpec) error {
	l.mu.Lock()
	m := l.models[res.ID]
	delete(l.models, res.ID)
	l.mu.Unlock()
	if m == nil {
		return nil
	}
	m.Free()
	return nil
}
