package sequence

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPadStretchesEveryNote(t *testing.T) {
	in := &NoteSequence{
		QPM: 120,
		Notes: []Note{
			{Pitch: 60, Velocity: 90, Start: 0, End: 0.25},
			{Pitch: 64, Velocity: 90, Start: 0.5, End: 0.6},
		},
		TotalTime: 0.6,
	}
	out := Pad(in, 2.0)
	for i, n := range out.Notes {
		if !almostEqual(n.End, n.Start+2.0) {
			t.Fatalf("note %d: end=%v want start+2.0", i, n.End)
		}
	}
	if !almostEqual(out.TotalTime, 2.5) {
		t.Fatalf("total time=%v want 2.5", out.TotalTime)
	}
	// input untouched
	if !almostEqual(in.Notes[0].End, 0.25) {
		t.Fatalf("input mutated: %v", in.Notes[0].End)
	}
}

func TestPadZeroLengthUsesDefault(t *testing.T) {
	in := &NoteSequence{QPM: 120, Notes: []Note{{Pitch: 60, Start: 1, End: 1.1}}}
	out := Pad(in, 0)
	if !almostEqual(out.Notes[0].End, 1+DefaultPadNoteLength) {
		t.Fatalf("end=%v", out.Notes[0].End)
	}
}

func TestFilterPitchesKeepsAllowedAndTempo(t *testing.T) {
	in := &NoteSequence{
		QPM:   96,
		Drums: true,
		Notes: []Note{
			{Pitch: 36, Start: 0, End: 0.1},
			{Pitch: 38, Start: 0.5, End: 0.6},
			{Pitch: 42, Start: 1.0, End: 1.1},
			{Pitch: 36, Start: 1.5, End: 1.6},
		},
		TotalTime: 1.6,
	}
	out := FilterPitches(in, map[uint8]bool{36: true})
	if len(out.Notes) != 2 {
		t.Fatalf("kept %d notes, want 2", len(out.Notes))
	}
	for _, n := range out.Notes {
		if n.Pitch != 36 {
			t.Fatalf("unexpected pitch %d", n.Pitch)
		}
	}
	if out.QPM != 96 {
		t.Fatalf("tempo lost: %v", out.QPM)
	}
	if !out.Drums {
		t.Fatal("drums flag lost")
	}
	if !almostEqual(out.TotalTime, 1.6) {
		t.Fatalf("total time=%v want 1.6", out.TotalTime)
	}
}

func TestFilterPitchesEmptyResult(t *testing.T) {
	in := &NoteSequence{QPM: 120, Notes: []Note{{Pitch: 50, Start: 0, End: 1}}, TotalTime: 1}
	out := FilterPitches(in, map[uint8]bool{36: true})
	if len(out.Notes) != 0 {
		t.Fatalf("kept %d notes, want 0", len(out.Notes))
	}
	if out.TotalTime != 0 {
		t.Fatalf("total time=%v want 0", out.TotalTime)
	}
	if out.QPM != 120 {
		t.Fatalf("tempo lost: %v", out.QPM)
	}
}

func TestAdjustTempoRescalesTimes(t *testing.T) {
	in := &NoteSequence{
		QPM:       120,
		Notes:     []Note{{Pitch: 60, Start: 1.0, End: 1.5}},
		TotalTime: 1.5,
	}
	out := AdjustTempo(in, 60)
	if out.QPM != 60 {
		t.Fatalf("qpm=%v", out.QPM)
	}
	if !almostEqual(out.Notes[0].Start, 2.0) || !almostEqual(out.Notes[0].End, 3.0) {
		t.Fatalf("note times=%v..%v want 2..3", out.Notes[0].Start, out.Notes[0].End)
	}
	if !almostEqual(out.TotalTime, 3.0) {
		t.Fatalf("total time=%v", out.TotalTime)
	}
	// Same tempo is a no-op on timing.
	same := AdjustTempo(in, 120)
	if !almostEqual(same.Notes[0].Start, 1.0) {
		t.Fatalf("same-tempo start=%v", same.Notes[0].Start)
	}
}

func TestAdjustTempoInvalidTempoLeavesCopy(t *testing.T) {
	in := &NoteSequence{QPM: 120, Notes: []Note{{Pitch: 60, Start: 1, End: 2}}, TotalTime: 2}
	out := AdjustTempo(in, 0)
	if out.QPM != 120 || !almostEqual(out.Notes[0].Start, 1) {
		t.Fatalf("unexpected mutation: %+v", out)
	}
}
