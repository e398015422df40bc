package musicvae

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"melodyd/internal/registry"
)

// helper: create a checkpoint file with some content
func createCheckpoint(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("weights-weights-weights"), 0o644); err != nil {
		t.Fatalf("write checkpoint: %v", err)
	}
	return p
}

func melodyConfig() registry.CheckpointConfig {
	cfg, ok := registry.Lookup("mel_2bar_big")
	if !ok {
		panic("mel_2bar_big missing from catalog")
	}
	return cfg
}

func drumConfig() registry.CheckpointConfig {
	cfg, ok := registry.Lookup("groovae_4bar")
	if !ok {
		panic("groovae_4bar missing from catalog")
	}
	return cfg
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader().Load(melodyConfig(), filepath.Join(t.TempDir(), "nope.ckpt"))
	if err == nil {
		t.Fatal("expected error for missing checkpoint file")
	}
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.ckpt")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewLoader().Load(melodyConfig(), p); err == nil {
		t.Fatal("expected error for empty checkpoint file")
	}
}

func TestMelodySample(t *testing.T) {
	dir := t.TempDir()
	p := createCheckpoint(t, dir, "mel_2bar_big.ckpt")
	m, err := NewLoader().Load(melodyConfig(), p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer m.Close()

	seq, err := m.Sample(context.Background(), SampleParams{Seed: 7})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(seq.Notes) == 0 {
		t.Fatal("no notes generated")
	}
	if seq.QPM != 120 {
		t.Fatalf("qpm=%v want 120", seq.QPM)
	}
	if seq.Drums {
		t.Fatal("melody model produced drums")
	}
	cfg := melodyConfig()
	for i, n := range seq.Notes {
		if n.Pitch < cfg.MinPitch || n.Pitch > cfg.MaxPitch {
			t.Fatalf("note %d pitch %d outside [%d, %d]", i, n.Pitch, cfg.MinPitch, cfg.MaxPitch)
		}
		if n.End <= n.Start {
			t.Fatalf("note %d has non-positive duration", i)
		}
		if n.Velocity == 0 || n.Velocity > 127 {
			t.Fatalf("note %d velocity %d", i, n.Velocity)
		}
	}
	// 2 bars of 4/4 at 120 qpm is 4 seconds.
	if seq.TotalTime < 3.9 || seq.TotalTime > 4.1 {
		t.Fatalf("total time=%v want ~4s", seq.TotalTime)
	}
}

func TestDrumSample(t *testing.T) {
	dir := t.TempDir()
	p := createCheckpoint(t, dir, "groovae_4bar.ckpt")
	m, err := NewLoader().Load(drumConfig(), p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer m.Close()

	seq, err := m.Sample(context.Background(), SampleParams{Seed: 11})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if !seq.Drums {
		t.Fatal("drum model did not flag drums")
	}
	if len(seq.Notes) == 0 {
		t.Fatal("no hits generated")
	}
	kit := map[uint8]bool{36: true, 38: true, 42: true, 46: true, 39: true}
	sawKick := false
	for i, n := range seq.Notes {
		if !kit[n.Pitch] {
			t.Fatalf("hit %d has non-kit pitch %d", i, n.Pitch)
		}
		if n.Pitch == 36 {
			sawKick = true
		}
	}
	if !sawKick {
		t.Fatal("pattern has no kick")
	}
}

func TestSampleDeterministicWithSeed(t *testing.T) {
	dir := t.TempDir()
	p := createCheckpoint(t, dir, "mel_2bar_big.ckpt")
	m, err := NewLoader().Load(melodyConfig(), p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer m.Close()

	a, err := m.Sample(context.Background(), SampleParams{Seed: 42})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	b, err := m.Sample(context.Background(), SampleParams{Seed: 42})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(a.Notes) != len(b.Notes) {
		t.Fatalf("lengths differ: %d vs %d", len(a.Notes), len(b.Notes))
	}
	for i := range a.Notes {
		if a.Notes[i] != b.Notes[i] {
			t.Fatalf("note %d differs: %+v vs %+v", i, a.Notes[i], b.Notes[i])
		}
	}
	c, err := m.Sample(context.Background(), SampleParams{Seed: 43})
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(a.Notes) == len(c.Notes) {
		same := true
		for i := range a.Notes {
			if a.Notes[i] != c.Notes[i] {
				same = false
				break
			}
		}
		if same {
			t.Fatal("different seeds produced identical output")
		}
	}
}

func TestSampleCanceledContext(t *testing.T) {
	dir := t.TempDir()
	p := createCheckpoint(t, dir, "mel_2bar_big.ckpt")
	m, err := NewLoader().Load(melodyConfig(), p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Sample(ctx, SampleParams{Seed: 1}); err == nil {
		t.Fatal("expected context error")
	}
}
