package manager

import (
	"time"

	"melodyd/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	resp := types.StatusResponse{
		BudgetMB:         m.budgetMB,
		UsedMB:           m.usedEstMB,
		MarginMB:         m.marginMB,
		LastError:        m.err,
		State:            string(m.state),
		LoadsTotal:       m.loadsTotal,
		EvictionsTotal:   m.evictionsTotal,
		GenerationsTotal: m.generationsTotal,
		UptimeSeconds:    int64(time.Since(m.startTime).Seconds()),
		ServerTimeUnix:   time.Now().Unix(),
	}
	resp.Instances = make([]types.InstanceStatus, 0, len(m.instances))
	for _, inst := range m.instances {
		resp.Instances = append(resp.Instances, types.InstanceStatus{
			Checkpoint:    inst.Checkpoint,
			State:         string(inst.State),
			LastUsed:      inst.LastUsed.Unix(),
			EstMemMB:      inst.EstMemMB,
			QueueLen:      len(inst.queueCh),
			Inflight:      len(inst.genCh),
			MaxQueueDepth: cap(inst.queueCh),
		})
	}
	return resp
}
