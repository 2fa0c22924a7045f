package scheduler

import (
	"context"
	"testing"
	"time"

	"agentd/pkg/types"
)

func TestExecLoaderRunsConfiguredCommand(t *testing.T) {
	l := NewExecLoader([]string{"true"}, []string{"true"}, time.Second)
	if err := l.Load(context.Background(), types.ResourceSpec{ID: "M"}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := l.Unload(context.Background(), types.ResourceSpec{ID: "M"}); err != nil {
		t.Fatalf("unload: %v", err)
	}
}

func TestExecLoaderReportsCommandFailure(t *testing.T) {
	l := NewExecLoader([]string{"false"}, []string{"false"}, time.Second)
	if err := l.Load(context.Background(), types.ResourceSpec{ID: "M"}); err == nil {
		t.Fatalf("expected failure from command")
	}
}

func TestExecLoaderRequiresCommand(t *testing.T) {
	l := NewExecLoader(nil, nil, time.Second)
	if err := l.Load(context.Background(), types.ResourceSpec{ID: "M"}); err == nil {
		t.Fatalf("expected error for empty argv")
	}
}

func TestExecLoaderHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewExecLoader([]string{"sleep", "10"}, nil, time.Second)
	if err := l.Load(ctx, types.ResourceSpec{ID: "M"}); err == nil {
		t.Fatalf("expected error from canceled context")
	}
}
