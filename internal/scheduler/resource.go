package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"agentd/internal/registry"
)

// resourceManager owns the single resource slot. loaded changes only inside
// an ensure or eviction critical section; at most one load/unload operation
// is in flight at any time (busy flag, waited on via cond).
type resourceManager struct {
	loader    ResourceLoader
	reg       *registry.Registry
	keepAlive time.Duration
	pub       EventPublisher
	log       zerolog.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	loaded   string
	lastUsed time.Time
	busy     bool

	loads     uint64
	unloads   uint64
	evictions uint64
}

func newResourceManager(loader ResourceLoader, reg *registry.Registry, keepAlive time.Duration, pub EventPublisher, log zerolog.Logger) *resourceManager {
	rm := &resourceManager{
		loader:    loader,
		reg:       reg,
		keepAlive: keepAlive,
		pub:       pub,
		log:       log,
	}
	rm.cond = sync.NewCond(&rm.mu)
	return rm
}

// ensure guarantees that after a successful return the given resource is the
// loaded one. Already-loaded resources only get their lastUsed refreshed; a
// different loaded resource is unloaded first. On any loader failure the
// slot is conservatively left empty.
func (rm *resourceManager) ensure(ctx context.Context, resourceID string) error {
	res, ok := rm.reg.Resource(resourceID)
	if !ok {
		// Unreachable when submissions are validated; keep the check so a
		// registry/coordinator mismatch fails loudly instead of loading junk.
		return ErrResourceLoad(resourceID, ErrAgentNotFound(resourceID))
	}

	rm.mu.Lock()
	for rm.busy {
		rm.cond.Wait()
	}
	if rm.loaded == resourceID {
		rm.lastUsed = time.Now()
		rm.mu.Unlock()
		return nil
	}
	prev := rm.loaded
	rm.busy = true
	rm.mu.Unlock()

	defer func() {
		rm.mu.Lock()
		rm.busy = false
		rm.cond.Broadcast()
		rm.mu.Unlock()
	}()

	if prev != "" {
		if err := rm.unload(ctx, prev); err != nil {
			return err
		}
	}

	rm.pub.Publish(Event{Name: EventLoadStart, ResourceID: resourceID})
	start := time.Now()
	if err := rm.loader.Load(ctx, res); err != nil {
		rm.mu.Lock()
		rm.loaded = ""
		rm.mu.Unlock()
		rm.pub.Publish(Event{Name: EventLoadFailed, ResourceID: resourceID, Fields: map[string]any{"error": err.Error()}})
		rm.log.Error().Err(err).Str("resource", resourceID).Msg("load failed")
		return ErrResourceLoad(resourceID, err)
	}
	loadsTotal.Inc()

	rm.mu.Lock()
	rm.loaded = resourceID
	rm.lastUsed = time.Now()
	rm.loads++
	rm.mu.Unlock()
	rm.pub.Publish(Event{Name: EventLoadDone, ResourceID: resourceID, Fields: map[string]any{"duration_ms": time.Since(start).Milliseconds()}})
	rm.log.Info().Str("resource", resourceID).Dur("dur", time.Since(start)).Int("cost_mb", res.CostMB).Msg("resource loaded")
	return nil
}

// unload runs the unload operation for the given resource and clears the
// slot. Caller must hold the busy flag.
func (rm *resourceManager) unload(ctx context.Context, resourceID string) error {
	res, _ := rm.reg.Resource(resourceID)
	rm.pub.Publish(Event{Name: EventUnloadStart, ResourceID: resourceID})
	start := time.Now()
	err := rm.loader.Unload(ctx, res)

	// Conservative either way: the slot is empty after an unload attempt,
	// successful or not.
	rm.mu.Lock()
	rm.loaded = ""
	if err == nil {
		rm.unloads++
	}
	rm.mu.Unlock()

	if err != nil {
		rm.pub.Publish(Event{Name: EventUnloadFailed, ResourceID: resourceID, Fields: map[string]any{"error": err.Error()}})
		rm.log.Error().Err(err).Str("resource", resourceID).Msg("unload failed")
		return ErrResourceUnload(resourceID, err)
	}
	unloadsTotal.Inc()
	rm.pub.Publish(Event{Name: EventUnloadDone, ResourceID: resourceID, Fields: map[string]any{"duration_ms": time.Since(start).Milliseconds()}})
	rm.log.Info().Str("resource", resourceID).Dur("dur", time.Since(start)).Msg("resource unloaded")
	return nil
}

// evictIdle unloads the resource if it has been idle past keepAlive. idle
// reports whether the coordinator's drain loop is quiescent; eviction never
// acts while a request is executing or queued.
func (rm *resourceManager) evictIdle(ctx context.Context, idle func() bool) {
	rm.mu.Lock()
	if rm.busy || rm.loaded == "" || time.Since(rm.lastUsed) < rm.keepAlive {
		rm.mu.Unlock()
		return
	}
	if !idle() {
		rm.mu.Unlock()
		return
	}
	id := rm.loaded
	rm.busy = true
	rm.mu.Unlock()

	err := rm.unload(ctx, id)

	rm.mu.Lock()
	if err == nil {
		rm.evictions++
	}
	rm.busy = false
	rm.cond.Broadcast()
	rm.mu.Unlock()

	if err == nil {
		evictionsTotal.Inc()
		rm.pub.Publish(Event{Name: EventResourceEvicted, ResourceID: id})
		rm.log.Info().Str("resource", id).Dur("keep_alive", rm.keepAlive).Msg("idle resource evicted")
	}
}

// snapshot returns the loaded resource id and operation counters.
func (rm *resourceManager) snapshot() (loaded string, loads, unloads, evictions uint64) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	return rm.loaded, rm.loads, rm.unloads, rm.evictions
}
