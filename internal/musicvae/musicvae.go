// Package musicvae is the sampling runtime behind the manager. It loads a
// pretrained checkpoint from disk and decodes latent samples into note
// sequences according to the checkpoint's hyperparameters. The Manager only
// sees the Loader/Model interfaces, so an alternative runtime can be swapped
// in without touching the orchestration layer.
package musicvae

import (
	"context"

	"melodyd/internal/registry"
	"melodyd/internal/sequence"
)

// SampleParams captures per-request sampling knobs.
type SampleParams struct {
	// Temperature controls randomness. Lower is more predictable, higher
	// is more random. Zero means DefaultTemperature.
	Temperature float64
	// Seed pins the random stream for reproducibility; 0 picks one.
	Seed int64
}

// DefaultTemperature matches the sampling default of the original service.
const DefaultTemperature = 0.9

// Model is a loaded checkpoint ready to sample.
type Model interface {
	// Sample decodes one note sequence. Implementations must return early
	// when the context is canceled.
	Sample(ctx context.Context, p SampleParams) (*sequence.NoteSequence, error)
	// Close releases resources held by the loaded checkpoint.
	Close() error
}

// Loader opens checkpoint files. The manager holds a single Loader for the
// process lifetime.
type Loader interface {
	Load(cfg registry.CheckpointConfig, path string) (Model, error)
}
