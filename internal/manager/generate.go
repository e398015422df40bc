package manager

import (
	"context"
	"fmt"
	"time"

	"melodyd/internal/musicvae"
	"melodyd/internal/registry"
	"melodyd/internal/sequence"
	"melodyd/pkg/types"
)

// BPM bounds accepted by the service.
const (
	MinBPM     = 40
	MaxBPM     = 240
	DefaultBPM = 120
)

// Generate renders one instrument track: it routes the genre/instrument pair
// to a checkpoint, ensures the model is loaded, samples a base sequence and
// applies the instrument-specific transforms and the tempo rescale.
func (m *Manager) Generate(ctx context.Context, req types.GenerateRequest) (*sequence.NoteSequence, error) {
	start := time.Now()

	instrument := req.Instrument
	if instrument == "" {
		instrument = "lead"
	}
	genre := req.Genre
	if genre == "" {
		genre = m.defaultGenre
	}
	bpm := req.BPM
	if bpm == 0 {
		bpm = DefaultBPM
	}
	if bpm < MinBPM || bpm > MaxBPM {
		return nil, ErrInvalidRequest(fmt.Sprintf("bpm %d out of range [%d, %d]", bpm, MinBPM, MaxBPM))
	}

	route, ok := registry.GenreRoute(genre)
	if !ok {
		return nil, ErrInvalidRequest("invalid genre: " + genre)
	}
	kind := registry.ClassifyInstrument(instrument)
	if kind == registry.KindUnknown {
		return nil, ErrInvalidRequest("invalid instrument: " + instrument)
	}

	checkpoint := route.Melody
	if kind == registry.KindDrumKit || kind == registry.KindKitPiece {
		checkpoint = route.Drums
		if checkpoint == "" {
			return nil, ErrInvalidRequest(
				fmt.Sprintf("genre %q does not support the instrument type %q", genre, instrument))
		}
	}

	if err := m.EnsureInstance(ctx, checkpoint); err != nil {
		return nil, err
	}
	// Admission: per-instance FIFO queue, single in-flight
	release, err := m.beginGeneration(ctx, checkpoint)
	if err != nil {
		return nil, err
	}
	defer release()

	m.mu.RLock()
	inst := m.instances[checkpoint]
	m.mu.RUnlock()
	if inst == nil || inst.Model == nil {
		return nil, ErrModelNotFound(checkpoint)
	}

	seq, err := inst.Model.Sample(ctx, musicvae.SampleParams{
		Temperature: req.Temperature,
		Seed:        req.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("sample %s: %w", checkpoint, err)
	}

	switch {
	case instrument == "pad":
		seq = sequence.Pad(seq, sequence.DefaultPadNoteLength)
	case kind == registry.KindKitPiece:
		seq = sequence.FilterPitches(seq, registry.DrumPitches[instrument])
	}
	seq = sequence.AdjustTempo(seq, float64(bpm))

	m.mu.Lock()
	m.generationsTotal++
	m.mu.Unlock()

	m.log.Info().Str("genre", genre).Str("instrument", instrument).Int("bpm", bpm).
		Str("checkpoint", checkpoint).Int("notes", len(seq.Notes)).
		Dur("dur", time.Since(start)).Msg("generated")
	m.publisher.Publish(Event{Name: "generated", Checkpoint: checkpoint, Fields: map[string]any{
		"genre": genre, "instrument": instrument, "bpm": bpm, "notes": len(seq.Notes),
	}})
	return seq, nil
}
