package sequence

import (
	"fmt"
	"io"
	"math"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 480
	drumChannel     = 9
	defaultQPM      = 120
)

// WriteSMF renders the sequence as a single-track standard MIDI file.
func (s *NoteSequence) WriteSMF(w io.Writer) error {
	qpm := s.QPM
	if qpm <= 0 {
		qpm = defaultQPM
	}
	ch := uint8(0)
	if s.Drums {
		ch = drumChannel
	}

	type event struct {
		tick uint32
		off  bool
		note Note
	}
	events := make([]event, 0, 2*len(s.Notes))
	for _, n := range s.Notes {
		if n.End < n.Start {
			return fmt.Errorf("note %d ends before it starts", n.Pitch)
		}
		events = append(events,
			event{tick: secondsToTicks(n.Start, qpm), note: n},
			event{tick: secondsToTicks(n.End, qpm), off: true, note: n},
		)
	}
	// Note-offs sort before note-ons at the same tick so retriggered
	// pitches close before reopening.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	out := smf.New()
	out.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var tr smf.Track
	tr.Add(0, smf.MetaTempo(qpm))
	if !s.Drums {
		tr.Add(0, midi.ProgramChange(ch, 0))
	}
	var prev uint32
	for _, ev := range events {
		delta := ev.tick - prev
		prev = ev.tick
		if ev.off {
			tr.Add(delta, midi.NoteOff(ch, ev.note.Pitch))
		} else {
			tr.Add(delta, midi.NoteOn(ch, ev.note.Pitch, ev.note.Velocity))
		}
	}
	tr.Close(0)
	out.Add(tr)

	_, err := out.WriteTo(w)
	return err
}

// ReadSMF parses a single-track standard MIDI file back into a NoteSequence.
// Only the first tempo event is honored.
func ReadSMF(r io.Reader) (*NoteSequence, error) {
	in, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("parse midi: %w", err)
	}
	ticks, ok := in.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", in.TimeFormat)
	}

	seq := &NoteSequence{QPM: defaultQPM}
	sawTempo := false
	type open struct {
		start float64
		vel   uint8
	}
	for _, track := range in.Tracks {
		var absTicks uint64
		pending := map[uint8]open{}
		for _, ev := range track {
			absTicks += uint64(ev.Delta)
			var bpm float64
			var channel, key, vel uint8
			switch {
			case ev.Message.GetMetaTempo(&bpm):
				if !sawTempo {
					seq.QPM = bpm
					sawTempo = true
				}
			case ev.Message.GetNoteStart(&channel, &key, &vel):
				if channel == drumChannel {
					seq.Drums = true
				}
				pending[key] = open{start: ticksToSeconds(absTicks, ticks, seq.QPM), vel: vel}
			case ev.Message.GetNoteEnd(&channel, &key):
				if o, found := pending[key]; found {
					seq.Notes = append(seq.Notes, Note{
						Pitch:    key,
						Velocity: o.vel,
						Start:    o.start,
						End:      ticksToSeconds(absTicks, ticks, seq.QPM),
					})
					delete(pending, key)
				}
			}
		}
	}
	sort.SliceStable(seq.Notes, func(i, j int) bool {
		return seq.Notes[i].Start < seq.Notes[j].Start
	})
	seq.recalcTotalTime()
	return seq, nil
}

func secondsToTicks(sec, qpm float64) uint32 {
	return uint32(math.Round(sec * qpm / 60 * ticksPerQuarter))
}

func ticksToSeconds(abs uint64, ticks smf.MetricTicks, qpm float64) float64 {
	return float64(abs) / float64(ticks) * 60 / qpm
}
