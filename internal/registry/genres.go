package registry

import (
	"sort"

	"melodyd/pkg/types"
)

// Route pairs the checkpoints serving one genre. An empty Drums field means
// the genre has no drum support.
type Route struct {
	Melody string
	Drums  string
}

var genreTable = map[string]Route{
	"pop":    {Melody: "mel_4bar_med_q2", Drums: "cat-drums_2bar_small"},
	"hiphop": {Melody: "mel_2bar_big", Drums: "groovae_4bar"},
	"dance":  {Melody: "mel_2bar_big", Drums: "groovae_4bar"},
	// Cinematic scores rarely want a kit part.
	"cinematic": {Melody: "mel_16bar_big_q2"},
}

// GenreRoute returns the checkpoint route for a genre.
func GenreRoute(genre string) (Route, bool) {
	r, ok := genreTable[genre]
	return r, ok
}

// Genres returns the routing table sorted by genre name.
func Genres() []types.GenreInfo {
	out := make([]types.GenreInfo, 0, len(genreTable))
	for g, r := range genreTable {
		out = append(out, types.GenreInfo{
			Genre:            g,
			MelodyCheckpoint: r.Melody,
			DrumCheckpoint:   r.Drums,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Genre < out[j].Genre })
	return out
}

// DrumPitches maps each kit-piece instrument to the General MIDI percussion
// pitches it keeps after filtering.
var DrumPitches = map[string]map[uint8]bool{
	"kick":       {35: true, 36: true},
	"snare":      {38: true, 40: true},
	"closed_hat": {42: true, 44: true},
	"open_hat":   {46: true},
	"clap":       {39: true},
}

var melodyInstruments = map[string]bool{
	"lead":  true,
	"pluck": true,
	"keys":  true,
	"pad":   true,
}

// Instruments returns every accepted instrument name, melody family first.
func Instruments() []string {
	out := []string{"lead", "pluck", "keys", "pad", "drums"}
	kit := make([]string, 0, len(DrumPitches))
	for k := range DrumPitches {
		kit = append(kit, k)
	}
	sort.Strings(kit)
	return append(out, kit...)
}

// InstrumentKind classifies an instrument name.
type InstrumentKind int

const (
	KindUnknown InstrumentKind = iota
	KindMelody
	KindDrumKit
	KindKitPiece
)

// ClassifyInstrument reports which family an instrument belongs to.
func ClassifyInstrument(name string) InstrumentKind {
	switch {
	case melodyInstruments[name]:
		return KindMelody
	case name == "drums":
		return KindDrumKit
	case DrumPitches[name] != nil:
		return KindKitPiece
	default:
		return KindUnknown
	}
}
