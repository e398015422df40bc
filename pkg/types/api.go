package types

// GenerateRequest captures the parameters of a single render request.
type GenerateRequest struct {
	// Instrument to render. One of: lead, pluck, keys, pad, drums, kick,
	// snare, closed_hat, open_hat, clap.
	// example: lead
	Instrument string `json:"instrument" example:"lead"`
	// Genre steering checkpoint selection.
	// example: pop
	Genre string `json:"genre" example:"pop"`
	// Target tempo in beats per minute (40-240).
	// example: 120
	BPM int `json:"bpm" example:"120"`
	// Sampling temperature (higher = more random). Zero means the server
	// default of 0.9.
	// example: 0.9
	Temperature float64 `json:"temperature,omitempty" example:"0.9"`
	// Random seed for reproducibility; 0 or omitted lets the server choose.
	// example: 42
	Seed int64 `json:"seed,omitempty" example:"42"`
}

// CheckpointsResponse wraps the list returned by GET /checkpoints.
type CheckpointsResponse struct {
	// Known checkpoints, resolved against the checkpoints directory.
	Checkpoints []Checkpoint `json:"checkpoints"`
}

// GenresResponse wraps the routing table returned by GET /genres.
type GenresResponse struct {
	Genres []GenreInfo `json:"genres"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid genre: polka
	Error string `json:"error" example:"invalid genre: polka"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// InstanceStatus summarizes one loaded model instance for /status.
type InstanceStatus struct {
	// Checkpoint name this instance serves.
	// example: mel_2bar_big
	Checkpoint string `json:"checkpoint" example:"mel_2bar_big"`
	// Current lifecycle state (loading, ready, draining).
	// example: ready
	State string `json:"state" example:"ready"`
	// Last time this instance served a request (unix seconds).
	// example: 1700000000
	LastUsed int64 `json:"last_used_unix" example:"1700000000"`
	// Estimated resident memory in MB, derived from checkpoint size.
	// example: 220
	EstMemMB int `json:"est_mem_mb" example:"220"`
	// Current queue length for incoming requests.
	// example: 0
	QueueLen int `json:"queue_len" example:"0"`
	// Number of in-flight generations (0 or 1).
	// example: 1
	Inflight int `json:"inflight" example:"1"`
	// Maximum queued requests allowed before backpressure triggers.
	// example: 32
	MaxQueueDepth int `json:"max_queue_depth" example:"32"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Loaded model instances.
	Instances []InstanceStatus `json:"instances"`
	// Memory budget in MB across all instances (0 = unlimited).
	// example: 4096
	BudgetMB int `json:"budget_mb" example:"4096"`
	// Estimated used memory in MB.
	// example: 440
	UsedMB int `json:"used_est_mb" example:"440"`
	// Reserved memory margin in MB.
	// example: 256
	MarginMB int `json:"margin_mb" example:"256"`
	// Last error observed by the manager (if any).
	LastError string `json:"last_error,omitempty"`
	// Overall manager state (loading, ready, error).
	// example: ready
	State string `json:"state" example:"ready"`
	// Total number of evictions performed to stay within budget.
	// example: 3
	EvictionsTotal uint64 `json:"evictions_total" example:"3"`
	// Total number of checkpoint loads.
	// example: 7
	LoadsTotal uint64 `json:"loads_total" example:"7"`
	// Total number of renders served.
	// example: 125
	GenerationsTotal uint64 `json:"generations_total" example:"125"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
