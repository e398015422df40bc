package sequence

// DefaultPadNoteLength is the sustained note length applied by Pad, in seconds.
const DefaultPadNoteLength = 2.0

// Pad returns a copy of the sequence where every note is stretched to a fixed
// length, turning a plucked melody into a sustained pad part.
func Pad(s *NoteSequence, noteLength float64) *NoteSequence {
	if noteLength <= 0 {
		noteLength = DefaultPadNoteLength
	}
	out := s.Clone()
	for i := range out.Notes {
		out.Notes[i].End = out.Notes[i].Start + noteLength
	}
	out.recalcTotalTime()
	return out
}

// FilterPitches returns a copy of the sequence containing only notes whose
// pitch is in the allowed set. The tempo header survives the filter; total
// time is recomputed from the surviving notes.
func FilterPitches(s *NoteSequence, allowed map[uint8]bool) *NoteSequence {
	out := &NoteSequence{QPM: s.QPM, Drums: s.Drums}
	for _, n := range s.Notes {
		if allowed[n.Pitch] {
			out.Notes = append(out.Notes, n)
		}
	}
	out.recalcTotalTime()
	return out
}

// AdjustTempo returns a copy of the sequence rescaled to a new tempo. Notes
// keep their metric positions: wall-clock times scale by oldQPM/newQPM.
func AdjustTempo(s *NoteSequence, qpm float64) *NoteSequence {
	out := s.Clone()
	if qpm <= 0 || s.QPM <= 0 {
		return out
	}
	ratio := s.QPM / qpm
	for i := range out.Notes {
		out.Notes[i].Start *= ratio
		out.Notes[i].End *= ratio
	}
	out.QPM = qpm
	out.recalcTotalTime()
	return out
}
