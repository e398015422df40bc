// Package registry holds the static model catalog, the genre routing table
// and the checkpoint directory scan that resolves catalog entries to files
// on disk.
package registry

import "sort"

// CheckpointConfig carries the sampling hyperparameters of a pretrained
// checkpoint. The catalog mirrors the published checkpoint family: the name
// doubles as the file stem under the checkpoints directory.
type CheckpointConfig struct {
	Name            string
	Description     string
	Drums           bool
	Bars            int
	StepsPerQuarter int
	// Pitch range decoded by melody models; ignored for drum models.
	MinPitch uint8
	MaxPitch uint8
}

var catalog = map[string]CheckpointConfig{
	"mel_2bar_big": {
		Name:            "mel_2bar_big",
		Description:     "2-bar melody model (large)",
		Bars:            2,
		StepsPerQuarter: 4,
		MinPitch:        48,
		MaxPitch:        84,
	},
	"mel_4bar_med_q2": {
		Name:            "mel_4bar_med_q2",
		Description:     "4-bar melody model (medium, 2 latent groups)",
		Bars:            4,
		StepsPerQuarter: 4,
		MinPitch:        48,
		MaxPitch:        84,
	},
	"mel_16bar_big_q2": {
		Name:            "mel_16bar_big_q2",
		Description:     "16-bar melody model for longer phrases",
		Bars:            16,
		StepsPerQuarter: 4,
		MinPitch:        36,
		MaxPitch:        96,
	},
	"cat-drums_2bar_small": {
		Name:            "cat-drums_2bar_small",
		Description:     "2-bar categorical drum model (small)",
		Drums:           true,
		Bars:            2,
		StepsPerQuarter: 4,
	},
	"groovae_4bar": {
		Name:            "groovae_4bar",
		Description:     "4-bar groove model with humanized timing",
		Drums:           true,
		Bars:            4,
		StepsPerQuarter: 4,
	},
	"cat-trio_16bar": {
		Name:            "cat-trio_16bar",
		Description:     "16-bar three-part (melody, bass, drums) model",
		Bars:            16,
		StepsPerQuarter: 4,
		MinPitch:        36,
		MaxPitch:        96,
	},
}

// Lookup returns the catalog entry for a checkpoint name.
func Lookup(name string) (CheckpointConfig, bool) {
	cfg, ok := catalog[name]
	return cfg, ok
}

// Catalog returns all known checkpoint configs sorted by name.
func Catalog() []CheckpointConfig {
	out := make([]CheckpointConfig, 0, len(catalog))
	for _, cfg := range catalog {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
