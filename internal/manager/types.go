package manager

import (
	"time"

	"melodyd/internal/musicvae"
)

// State represents lifecycle state of the manager/instances.
type State string

const (
	StateReady    State = "ready"
	StateLoading  State = "loading"
	StateDraining State = "draining"
	StateError    State = "error"
)

// Instance represents a live model context (one per checkpoint name).
type Instance struct {
	Checkpoint string
	State      State
	LastUsed   time.Time
	EstMemMB   int
	// Queueing primitives
	genCh   chan struct{} // size 1: single in-flight generation
	queueCh chan struct{} // buffered: queue slots
	// Model is the loaded checkpoint backing this instance.
	Model musicvae.Model
}
