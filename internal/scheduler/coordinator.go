package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agentd/internal/registry"
	"agentd/pkg/types"
)

// Coordinator accepts agent work requests, orders them by priority, and
// executes them one at a time against the single resource slot. There is at
// most one active drain loop; submissions are fire-and-forget.
type Coordinator struct {
	cfg   Config
	reg   *registry.Registry
	res   *resourceManager
	exec  Executor
	queue *requestQueue
	pub   EventPublisher
	log   zerolog.Logger

	seq        atomic.Uint64
	processing atomic.Bool
	// drainStarts counts drain loop activations; one per burst.
	drainStarts atomic.Uint64

	statsMu   sync.Mutex
	submitted uint64
	completed uint64
	failed    uint64
	avgWait   float64

	startTime time.Time
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New builds a Coordinator and starts its idle-eviction ticker. Call Close
// to stop background work.
func New(reg *registry.Registry, loader ResourceLoader, exec Executor, cfg Config) *Coordinator {
	cfg.applyDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	c := &Coordinator{
		cfg:       cfg,
		reg:       reg,
		exec:      exec,
		queue:     newRequestQueue(),
		pub:       cfg.Publisher,
		log:       cfg.Logger,
		startTime: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
	}
	c.res = newResourceManager(loader, reg, cfg.KeepAlive, cfg.Publisher, cfg.Logger)

	c.wg.Add(1)
	go c.evictLoop()
	return c
}

// Submit validates the agent, queues the request, and kicks the drain loop
// if idle. It never blocks on execution.
func (c *Coordinator) Submit(agentID, task string, priority Priority, requester string) (Ack, error) {
	if _, ok := c.reg.Agent(agentID); !ok {
		return Ack{}, ErrAgentNotFound(agentID)
	}
	// Best-effort bound: the check and the push are separate operations, so
	// racing submits can overshoot the depth by the number of concurrent
	// callers. The bound exists for backpressure, not as a hard cap.
	if c.cfg.MaxQueueDepth > 0 && c.queue.size() >= c.cfg.MaxQueueDepth {
		return Ack{}, ErrQueueFull(c.cfg.MaxQueueDepth)
	}

	req := &Request{
		ID:          uuid.NewString(),
		AgentID:     agentID,
		Task:        task,
		Priority:    priority,
		Requester:   requester,
		SubmittedAt: time.Now(),
		seq:         c.seq.Add(1),
	}
	c.queue.push(req)
	size := c.queue.size()

	c.statsMu.Lock()
	c.submitted++
	c.statsMu.Unlock()
	submittedTotal.Inc()
	queueDepth.Set(float64(size))

	c.pub.Publish(Event{
		Name: EventRequestQueued, RequestID: req.ID, AgentID: agentID, Requester: requester,
		Fields: map[string]any{"priority": priority.String(), "queue_size": size},
	})
	c.log.Info().Str("agent", agentID).Str("priority", priority.String()).Int("queue_size", size).Msg("request queued")

	if c.processing.CompareAndSwap(false, true) {
		c.drainStarts.Add(1)
		go c.drain()
	}
	return Ack{RequestID: req.ID, QueueSize: size}, nil
}

// drain is the single active consumer. It runs until the queue is observed
// empty after the processing flag is cleared, closing the race with a
// submit that pushed between the final pop and the flag store.
func (c *Coordinator) drain() {
	for {
		req, ok := c.queue.popHighest()
		if !ok {
			c.processing.Store(false)
			if c.queue.size() == 0 || !c.processing.CompareAndSwap(false, true) {
				c.log.Debug().Msg("queue empty, coordinator idle")
				return
			}
			continue
		}
		queueDepth.Set(float64(c.queue.size()))
		if c.ctx.Err() != nil {
			c.processing.Store(false)
			return
		}
		c.process(req)
	}
}

func (c *Coordinator) process(req *Request) {
	wait := time.Since(req.SubmittedAt)
	c.pub.Publish(Event{
		Name: EventRequestStart, RequestID: req.ID, AgentID: req.AgentID, Requester: req.Requester,
		Fields: map[string]any{"wait_seconds": wait.Seconds()},
	})

	res, ok := c.reg.ResourceFor(req.AgentID)
	if !ok {
		// Submit validated the agent, so a miss here is a registry bug.
		c.fail(req, "ensure", ErrResourceLoad("", ErrAgentNotFound(req.AgentID)))
		return
	}
	if err := c.res.ensure(c.ctx, res.ID); err != nil {
		c.fail(req, "ensure", err)
		return
	}

	agent, _ := c.reg.Agent(req.AgentID)
	out, err := c.exec.Execute(c.ctx, agent, req.Task)
	if err != nil {
		c.fail(req, "execute", ErrExecution(req.AgentID, err))
		return
	}

	c.statsMu.Lock()
	c.completed++
	c.avgWait += (wait.Seconds() - c.avgWait) / float64(c.completed)
	c.statsMu.Unlock()
	completedTotal.Inc()
	waitSeconds.Observe(wait.Seconds())

	c.pub.Publish(Event{
		Name: EventRequestDone, RequestID: req.ID, AgentID: req.AgentID, ResourceID: res.ID, Requester: req.Requester,
		Fields: map[string]any{"wait_seconds": wait.Seconds(), "result_bytes": len(out)},
	})
	c.log.Info().Str("agent", req.AgentID).Dur("wait", wait).Msg("request completed")
}

// fail records a failed request and lets the drain loop continue. There is
// no automatic retry; resubmission is the caller's responsibility.
func (c *Coordinator) fail(req *Request, stage string, err error) {
	c.statsMu.Lock()
	c.failed++
	c.statsMu.Unlock()
	failedTotal.WithLabelValues(stage).Inc()

	c.pub.Publish(Event{
		Name: EventRequestFailed, RequestID: req.ID, AgentID: req.AgentID, Requester: req.Requester,
		Fields: map[string]any{"stage": stage, "error": err.Error()},
	})
	c.log.Error().Err(err).Str("agent", req.AgentID).Str("stage", stage).Msg("request failed")
}

// idle reports whether the drain loop is quiescent: nothing queued and
// nothing executing. Eviction only acts in this state.
func (c *Coordinator) idle() bool {
	return !c.processing.Load() && c.queue.size() == 0
}

func (c *Coordinator) evictLoop() {
	defer c.wg.Done()
	ticker := time.NewTicker(c.cfg.EvictInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.res.evictIdle(c.ctx, c.idle)
		}
	}
}

// Status returns a non-blocking point-in-time snapshot. Never mutates state.
func (c *Coordinator) Status() types.StatusResponse {
	loaded, loads, unloads, evictions := c.res.snapshot()

	c.statsMu.Lock()
	stats := types.Stats{
		TotalSubmitted:     c.submitted,
		TotalCompleted:     c.completed,
		TotalFailed:        c.failed,
		AverageWaitSeconds: c.avgWait,
	}
	c.statsMu.Unlock()
	stats.LoadsTotal = loads
	stats.UnloadsTotal = unloads
	stats.EvictionsTotal = evictions

	resp := types.StatusResponse{
		QueueSize:      c.queue.size(),
		IsProcessing:   c.processing.Load(),
		Stats:          stats,
		UptimeSeconds:  int64(time.Since(c.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	if loaded != "" {
		resp.LoadedResource = &loaded
	}
	return resp
}

// Agents returns the registered agents.
func (c *Coordinator) Agents() []types.AgentSpec {
	return c.reg.Agents()
}

// Ready reports whether the coordinator accepts submissions.
func (c *Coordinator) Ready() bool {
	return c.ctx.Err() == nil
}

// Close stops background work and abandons in-flight operations. Queued
// requests are dropped; nothing persists beyond process memory.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		c.wg.Wait()
	})
}
