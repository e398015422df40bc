package manager

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"melodyd/internal/musicvae"
	"melodyd/internal/registry"
	"melodyd/pkg/types"
)

type Manager struct {
	mu           sync.RWMutex
	state        State
	err          string
	registry     []types.Checkpoint
	budgetMB     int
	marginMB     int
	defaultGenre string
	instances    map[string]*Instance
	usedEstMB    int

	// Queue config
	maxQueueDepth int
	maxWait       time.Duration
	drainTimeout  time.Duration

	loader    musicvae.Loader
	publisher EventPublisher
	log       zerolog.Logger
	startTime time.Time

	loadsTotal       uint64
	evictionsTotal   uint64
	generationsTotal uint64
}

// New constructs a Manager with package defaults for queueing and timeouts.
func New(reg []types.Checkpoint, budgetMB, marginMB int, defaultGenre string) *Manager {
	return NewWithConfig(ManagerConfig{
		Registry:     reg,
		BudgetMB:     budgetMB,
		MarginMB:     marginMB,
		DefaultGenre: defaultGenre,
	})
}

// Ready reports whether the service can accept work. The manager starts
// ready (models load lazily) and only leaves readiness on a load error.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == StateError {
		return false
	}
	for _, inst := range m.instances {
		if inst.State == StateLoading {
			return true
		}
	}
	return true
}

// ListCheckpoints returns the resolved checkpoint catalog.
func (m *Manager) ListCheckpoints() []types.Checkpoint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// return a shallow copy to avoid external mutation
	out := make([]types.Checkpoint, len(m.registry))
	copy(out, m.registry)
	return out
}

// Genres returns the genre routing table.
func (m *Manager) Genres() []types.GenreInfo {
	return registry.Genres()
}
