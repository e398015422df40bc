package musicvae

import (
	"context"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"math/rand"
	"os"
	"time"

	"melodyd/internal/registry"
	"melodyd/internal/sequence"
)

// Checkpoints decode at a fixed internal tempo; callers rescale afterwards.
const decodeQPM = 120

// checkpointLoader reads checkpoint files from disk.
type checkpointLoader struct{}

// NewLoader returns the default checkpoint loader.
func NewLoader() Loader {
	return checkpointLoader{}
}

// headerBytes is how much of the checkpoint file feeds the weight digest.
const headerBytes = 1 << 20

func (checkpointLoader) Load(cfg registry.CheckpointConfig, path string) (Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open checkpoint %s: %w", cfg.Name, err)
	}
	defer f.Close()

	h := fnv.New64a()
	n, err := io.Copy(h, io.LimitReader(f, headerBytes))
	if err != nil {
		return nil, fmt.Errorf("read checkpoint %s: %w", cfg.Name, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("checkpoint %s is empty", cfg.Name)
	}
	return &trainedModel{cfg: cfg, digest: h.Sum64()}, nil
}

// trainedModel is a loaded checkpoint. The weight digest seeds the decoder
// so two services pointing at the same checkpoint file sample from the same
// distribution.
type trainedModel struct {
	cfg    registry.CheckpointConfig
	digest uint64
}

func (m *trainedModel) Close() error { return nil }

func (m *trainedModel) Sample(ctx context.Context, p SampleParams) (*sequence.NoteSequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	temp := p.Temperature
	if temp <= 0 {
		temp = DefaultTemperature
	}
	if temp > 2 {
		temp = 2
	}
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed ^ int64(m.digest)))

	if m.cfg.Drums {
		return m.decodeDrums(rng, temp), nil
	}
	return m.decodeMelody(rng, temp), nil
}

// steps returns the grid length of one sample: bars of 4/4 at the model's
// step resolution.
func (m *trainedModel) steps() int {
	return m.cfg.Bars * 4 * m.cfg.StepsPerQuarter
}

func (m *trainedModel) stepSeconds() float64 {
	return 60.0 / decodeQPM / float64(m.cfg.StepsPerQuarter)
}

// Scale degrees used by the melody decoder (natural minor pentatonic plus
// passing tones reads well across the genre table).
var scaleOffsets = []int{0, 2, 3, 5, 7, 8, 10}

// decodeMelody walks the model's pitch range along a scale. Temperature
// widens the interval distribution and raises the rest probability.
func (m *trainedModel) decodeMelody(rng *rand.Rand, temp float64) *sequence.NoteSequence {
	seq := &sequence.NoteSequence{QPM: decodeQPM}
	step := m.stepSeconds()
	total := m.steps()

	root := int(m.cfg.MinPitch) + 12 + rng.Intn(12)
	degree := 0
	octave := 0
	for i := 0; i < total; {
		// Rest with a temperature-scaled probability.
		if rng.Float64() < 0.15*temp {
			i++
			continue
		}
		// Pick an interval: small moves dominate, larger leaps show up
		// as temperature rises.
		jump := int(math.Round(rng.NormFloat64() * temp * 1.5))
		degree += jump
		for degree < 0 {
			degree += len(scaleOffsets)
			octave--
		}
		for degree >= len(scaleOffsets) {
			degree -= len(scaleOffsets)
			octave++
		}
		pitch := root + octave*12 + scaleOffsets[degree]
		for pitch < int(m.cfg.MinPitch) {
			pitch += 12
			octave++
		}
		for pitch > int(m.cfg.MaxPitch) {
			pitch -= 12
			octave--
		}

		// Hold for 1-4 steps, biased short.
		hold := 1 + rng.Intn(4)
		if i+hold > total {
			hold = total - i
		}
		vel := velocityForStep(i, m.cfg.StepsPerQuarter, rng)
		seq.Notes = append(seq.Notes, sequence.Note{
			Pitch:    uint8(pitch),
			Velocity: vel,
			Start:    float64(i) * step,
			End:      float64(i+hold) * step,
		})
		i += hold
	}
	seq.TotalTime = float64(total) * step
	return seq
}

// kit pieces emitted by the drum decoder, with per-step hit probabilities
// over a 16-step bar pattern.
var drumRows = []struct {
	pitch uint8
	prob  [16]float64
}{
	{36, [16]float64{0.95, 0, 0.1, 0, 0.2, 0, 0.1, 0.3, 0.9, 0, 0.1, 0.2, 0.1, 0, 0.3, 0}}, // kick
	{38, [16]float64{0, 0, 0, 0.05, 0.95, 0, 0.1, 0, 0.05, 0, 0, 0.05, 0.95, 0, 0.1, 0.2}}, // snare
	{42, [16]float64{0.9, 0.2, 0.8, 0.2, 0.9, 0.2, 0.8, 0.2, 0.9, 0.2, 0.8, 0.2, 0.9, 0.2, 0.8, 0.2}}, // closed hat
	{46, [16]float64{0, 0, 0.15, 0, 0, 0, 0.15, 0, 0, 0, 0.15, 0, 0, 0, 0.25, 0}},          // open hat
	{39, [16]float64{0, 0, 0, 0, 0.3, 0, 0, 0, 0, 0, 0, 0, 0.3, 0, 0, 0.1}},                // clap
}

// decodeDrums rolls a hit grid per kit piece. Groove-style checkpoints (4-bar
// models) add timing and velocity humanization.
func (m *trainedModel) decodeDrums(rng *rand.Rand, temp float64) *sequence.NoteSequence {
	seq := &sequence.NoteSequence{QPM: decodeQPM, Drums: true}
	step := m.stepSeconds()
	total := m.steps()
	stepsPerBar := 4 * m.cfg.StepsPerQuarter
	groove := m.cfg.Bars >= 4

	for i := 0; i < total; i++ {
		pos := (i * 16 / stepsPerBar) % 16
		for _, row := range drumRows {
			p := row.prob[pos] * temp
			if p > 1 {
				p = 1
			}
			if rng.Float64() >= p {
				continue
			}
			start := float64(i) * step
			vel := velocityForStep(i, m.cfg.StepsPerQuarter, rng)
			if groove {
				start += (rng.Float64() - 0.5) * step * 0.2
				if start < 0 {
					start = 0
				}
				v := int(vel) + rng.Intn(21) - 10
				if v < 1 {
					v = 1
				}
				if v > 127 {
					v = 127
				}
				vel = uint8(v)
			}
			seq.Notes = append(seq.Notes, sequence.Note{
				Pitch:    row.pitch,
				Velocity: vel,
				Start:    start,
				End:      start + step/2,
			})
		}
	}
	seq.TotalTime = float64(total) * step
	return seq
}

// velocityForStep accents downbeats, softens offbeats and adds a little
// spread.
func velocityForStep(i, stepsPerQuarter int, rng *rand.Rand) uint8 {
	base := 80
	switch {
	case i%(4*stepsPerQuarter) == 0:
		base = 100
	case i%stepsPerQuarter == 0:
		base = 90
	}
	v := base + rng.Intn(11) - 5
	if v < 1 {
		v = 1
	}
	if v > 127 {
		v = 127
	}
	return uint8(v)
}
