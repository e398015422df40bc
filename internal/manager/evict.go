package manager

import "time"

// Evict LRU idle instances until required MB fits budget + margin.
func (m *Manager) evictUntilFits(requiredMB int) error {
	deadline := time.Now().Add(1 * time.Second)
	for {
		m.mu.Lock()
		fits := (m.usedEstMB + requiredMB + m.marginMB) <= m.budgetMB
		if fits {
			m.mu.Unlock()
			return nil
		}
		// Pick LRU idle instance (no in-flight and no queued requests)
		var lru *Instance
		for _, inst := range m.instances {
			if len(inst.genCh) > 0 || len(inst.queueCh) > 0 {
				// active or has queued work; skip
				continue
			}
			if lru == nil || inst.LastUsed.Before(lru.LastUsed) {
				lru = inst
			}
		}
		if lru == nil {
			// nothing to evict
			m.mu.Unlock()
			return nil
		}
		delete(m.instances, lru.Checkpoint)
		m.usedEstMB -= lru.EstMemMB
		if m.usedEstMB < 0 {
			m.usedEstMB = 0
		}
		m.evictionsTotal++
		model := lru.Model
		m.mu.Unlock()

		if model != nil {
			_ = model.Close()
		}
		m.publisher.Publish(Event{Name: "evicted", Checkpoint: lru.Checkpoint,
			Fields: map[string]any{"est_mb": lru.EstMemMB}})

		if time.Now().After(deadline) {
			return nil
		}
		// loop to re-check
	}
}
