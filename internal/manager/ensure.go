package manager

import (
	"context"
	"fmt"
	"time"

	"melodyd/internal/registry"
)

// EnsureInstance makes sure the named checkpoint is loaded and ready,
// evicting idle instances first when the memory budget requires it.
func (m *Manager) EnsureInstance(ctx context.Context, checkpoint string) error {
	startTs := time.Now()
	if checkpoint == "" {
		return modelNotFoundError{name: "(unspecified)"}
	}
	m.publisher.Publish(Event{Name: "ensure_start", Checkpoint: checkpoint})

	m.mu.RLock()
	inst, ok := m.instances[checkpoint]
	ready := ok && inst != nil && inst.State == StateReady
	m.mu.RUnlock()
	if ready {
		// Upgrade to write lock to safely mutate LastUsed and re-check state
		m.mu.Lock()
		if inst2, ok2 := m.instances[checkpoint]; ok2 && inst2 != nil && inst2.State == StateReady {
			inst2.LastUsed = time.Now()
			m.mu.Unlock()
			return nil
		}
		m.mu.Unlock()
		// If state changed in between, continue with ensure path
	}

	// Resolve checkpoint from the catalog and the scanned directory.
	cfg, known := registry.Lookup(checkpoint)
	ck, scanned := m.getCheckpointByName(checkpoint)
	if !known || !scanned {
		m.publisher.Publish(Event{Name: "ensure_not_found", Checkpoint: checkpoint})
		return ErrModelNotFound(checkpoint)
	}
	if ck.Path == "" {
		m.publisher.Publish(Event{Name: "ensure_missing_file", Checkpoint: checkpoint})
		return ErrDependencyUnavailable(
			fmt.Sprintf("checkpoint file for %q not present in checkpoints dir", checkpoint))
	}
	reqMB := m.estimateMemMB(ck)

	// Evict until it fits budget + margin, if budget configured
	if m.budgetMB > 0 {
		if err := m.evictUntilFits(reqMB); err != nil {
			m.publisher.Publish(Event{Name: "ensure_budget_fail", Checkpoint: checkpoint,
				Fields: map[string]any{"error": err.Error()}})
			return err
		}
	}

	// Mark a loading instance before doing the (possibly slow) file work.
	m.mu.Lock()
	inst, existed := m.instances[checkpoint]
	addedNow := false
	if !existed || inst == nil {
		inst = &Instance{
			Checkpoint: checkpoint,
			State:      StateLoading,
			LastUsed:   time.Now(),
			EstMemMB:   reqMB,
			genCh:      make(chan struct{}, 1),
			queueCh:    make(chan struct{}, m.maxQueueDepth),
		}
		m.instances[checkpoint] = inst
		addedNow = true
	} else {
		inst.State = StateLoading
		inst.EstMemMB = reqMB
		inst.LastUsed = time.Now()
	}
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		m.failLoad(checkpoint, addedNow, err)
		return err
	}
	model, err := m.loader.Load(cfg, ck.Path)
	if err != nil {
		m.failLoad(checkpoint, addedNow, err)
		m.publisher.Publish(Event{Name: "ensure_load_error", Checkpoint: checkpoint,
			Fields: map[string]any{"error": err.Error()}})
		return err
	}

	m.mu.Lock()
	if addedNow {
		// Only add to used estimate when we actually added a new instance
		m.usedEstMB += reqMB
	}
	inst.Model = model
	inst.State = StateReady
	inst.LastUsed = time.Now()
	m.state = StateReady
	m.err = ""
	m.loadsTotal++
	m.mu.Unlock()

	m.log.Info().Str("checkpoint", checkpoint).
		Dur("dur", time.Since(startTs)).Int("est_mb", reqMB).Msg("checkpoint loaded")
	m.publisher.Publish(Event{Name: "ensure_ready", Checkpoint: checkpoint,
		Fields: map[string]any{"dur_ms": int(time.Since(startTs) / time.Millisecond)}})
	return nil
}

// failLoad rolls back a loading instance and records the error.
func (m *Manager) failLoad(checkpoint string, addedNow bool, err error) {
	m.mu.Lock()
	if addedNow {
		delete(m.instances, checkpoint)
	} else if inst := m.instances[checkpoint]; inst != nil {
		inst.State = StateError
	}
	m.state = StateError
	m.err = err.Error()
	m.mu.Unlock()
	m.log.Error().Str("checkpoint", checkpoint).Err(err).Msg("checkpoint load failed")
}
