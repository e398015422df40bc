// Package sequence holds the in-memory score representation shared by the
// sampler, the post-processing transforms and the MIDI serializer. Times are
// in seconds, pitches are MIDI note numbers.
package sequence

// Note is a single note event.
type Note struct {
	Pitch    uint8
	Velocity uint8
	Start    float64
	End      float64
}

// NoteSequence is a flat list of notes with a tempo header.
type NoteSequence struct {
	// QPM is the tempo in quarter notes per minute.
	QPM float64
	// TotalTime is the end of the last note in seconds.
	TotalTime float64
	// Drums marks the sequence as a drum pattern (rendered on MIDI channel 10).
	Drums bool
	Notes []Note
}

// Clone returns a deep copy of the sequence.
func (s *NoteSequence) Clone() *NoteSequence {
	out := &NoteSequence{
		QPM:       s.QPM,
		TotalTime: s.TotalTime,
		Drums:     s.Drums,
		Notes:     make([]Note, len(s.Notes)),
	}
	copy(out.Notes, s.Notes)
	return out
}

// recalcTotalTime sets TotalTime to the max note end, or zero when empty.
func (s *NoteSequence) recalcTotalTime() {
	total := 0.0
	for _, n := range s.Notes {
		if n.End > total {
			total = n.End
		}
	}
	s.TotalTime = total
}
