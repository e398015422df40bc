package manager

import (
	"time"

	"github.com/rs/zerolog"

	"melodyd/internal/musicvae"
	"melodyd/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxWait       = 30 * time.Second
	defaultDrainTimeout  = 10 * time.Second
	defaultGenre         = "pop"
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Registry      []types.Checkpoint
	BudgetMB      int
	MarginMB      int
	DefaultGenre  string
	MaxQueueDepth int
	MaxWait       time.Duration
	DrainTimeout  time.Duration
	// Loader opens checkpoint files; nil selects the default runtime.
	Loader musicvae.Loader
	// Publisher receives lifecycle events; nil drops them.
	Publisher EventPublisher
	// Logger for manager events; the zero value is discarded output.
	Logger zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		state:        StateReady,
		registry:     cfg.Registry,
		budgetMB:     cfg.BudgetMB,
		marginMB:     cfg.MarginMB,
		defaultGenre: cfg.DefaultGenre,
		instances:    make(map[string]*Instance),
		loader:       cfg.Loader,
		publisher:    cfg.Publisher,
		log:          cfg.Logger,
	}
	if m.defaultGenre == "" {
		m.defaultGenre = defaultGenre
	}
	if cfg.MaxQueueDepth <= 0 {
		m.maxQueueDepth = defaultMaxQueueDepth
	} else {
		m.maxQueueDepth = cfg.MaxQueueDepth
	}
	if cfg.MaxWait <= 0 {
		m.maxWait = defaultMaxWait
	} else {
		m.maxWait = cfg.MaxWait
	}
	if cfg.DrainTimeout <= 0 {
		m.drainTimeout = defaultDrainTimeout
	} else {
		m.drainTimeout = cfg.DrainTimeout
	}
	if m.loader == nil {
		m.loader = musicvae.NewLoader()
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	m.startTime = time.Now()
	return m
}
