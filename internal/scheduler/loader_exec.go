package scheduler

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"agentd/pkg/types"
)

// ExecLoader realizes load/unload by running external commands, e.g.
// "podman pod start <resource>" / "podman pod stop <resource>". The resource
// id is appended to the configured argv.
type ExecLoader struct {
	loadArgv   []string
	unloadArgv []string
	timeout    time.Duration
}

// NewExecLoader builds an ExecLoader from argv templates. A zero timeout
// falls back to 30s per operation.
func NewExecLoader(loadArgv, unloadArgv []string, timeout time.Duration) *ExecLoader {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExecLoader{loadArgv: loadArgv, unloadArgv: unloadArgv, timeout: timeout}
}

func (l *ExecLoader) Load(ctx context.Context, res types.ResourceSpec) error {
	return l.run(ctx, l.loadArgv, res.ID)
}

func (l *ExecLoader) Unload(ctx context.Context, res types.ResourceSpec) error {
	return l.run(ctx, l.unloadArgv, res.ID)
}

func (l *ExecLoader) run(ctx context.Context, argv []string, resourceID string) error {
	if len(argv) == 0 {
		return fmt.Errorf("no command configured")
	}
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	args := append(append([]string(nil), argv[1:]...), resourceID)
	cmd := exec.CommandContext(ctx, argv[0], args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %w: %s", argv[0], err, msg)
		}
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}
