package manager

import (
	"time"
)

// Unload initiates a graceful drain of a model instance and removes it.
// - Sets instance state to draining to reject new enqueues.
// - Waits up to drainTimeout for in-flight and queued requests to finish.
// - Closes the loaded model and removes the instance entry.
func (m *Manager) Unload(checkpoint string) error {
	if checkpoint == "" {
		return ErrModelNotFound("(unspecified)")
	}
	m.mu.Lock()
	inst := m.instances[checkpoint]
	if inst == nil {
		m.mu.Unlock()
		return ErrModelNotFound(checkpoint)
	}
	inst.State = StateDraining
	m.mu.Unlock()
	m.publisher.Publish(Event{Name: "unload_start", Checkpoint: checkpoint})

	deadline := time.Now().Add(m.drainTimeout)
	for {
		m.mu.RLock()
		qlen := len(inst.queueCh)
		inflight := len(inst.genCh)
		m.mu.RUnlock()
		if inflight == 0 && qlen == 0 {
			break
		}
		if time.Now().After(deadline) {
			m.publisher.Publish(Event{Name: "unload_timeout", Checkpoint: checkpoint,
				Fields: map[string]any{"inflight": inflight, "queue": qlen}})
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	m.mu.Lock()
	var model interface{ Close() error }
	if inst2 := m.instances[checkpoint]; inst2 != nil {
		m.usedEstMB -= inst2.EstMemMB
		if m.usedEstMB < 0 {
			m.usedEstMB = 0
		}
		model = inst2.Model
	}
	delete(m.instances, checkpoint)
	m.mu.Unlock()

	if model != nil {
		_ = model.Close()
	}
	m.publisher.Publish(Event{Name: "unload_done", Checkpoint: checkpoint})
	return nil
}
