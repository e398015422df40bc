package types

// Checkpoint describes a pretrained model checkpoint known to the service.
type Checkpoint struct {
	// Stable checkpoint name, as referenced by the genre table.
	// example: mel_2bar_big
	Name string `json:"name" example:"mel_2bar_big"`
	// Human-friendly description of the model.
	// example: 2-bar melody model (large)
	Description string `json:"description,omitempty" example:"2-bar melody model (large)"`
	// Absolute path to the checkpoint file on disk. Empty when the file
	// has not been found under the checkpoints directory.
	// example: /home/user/checkpoints/mel_2bar_big.ckpt
	Path string `json:"path,omitempty" example:"/home/user/checkpoints/mel_2bar_big.ckpt"`
	// Whether the checkpoint decodes drum patterns (as opposed to melodies).
	// example: false
	Drums bool `json:"drums" example:"false"`
	// Number of bars the model generates per sample.
	// example: 2
	Bars int `json:"bars" example:"2"`
}

// GenreInfo describes one row of the genre routing table.
type GenreInfo struct {
	// Genre name accepted by /generate.
	// example: hiphop
	Genre string `json:"genre" example:"hiphop"`
	// Checkpoint used for melody-family instruments.
	// example: mel_2bar_big
	MelodyCheckpoint string `json:"melody_checkpoint" example:"mel_2bar_big"`
	// Checkpoint used for drum-family instruments; empty when the genre
	// does not support drums.
	// example: groovae_4bar
	DrumCheckpoint string `json:"drum_checkpoint,omitempty" example:"groovae_4bar"`
}
