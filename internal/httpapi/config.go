package httpapi

// defaultGenre is applied when a generate request omits the genre.
var defaultGenre = "pop"

// SetDefaultGenre configures the genre used when a request omits one.
func SetDefaultGenre(g string) {
	if g != "" {
		defaultGenre = g
	}
}

// outputDir, when set, receives a copy of every rendered MIDI file.
var outputDir string

// SetOutputDir configures an optional directory for persisted renders.
// Empty disables persistence.
func SetOutputDir(dir string) { outputDir = dir }

// CORS configuration (opt-in). If disabled, no CORS middleware is added.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
	corsAllowedMethods []string
	corsAllowedHeaders []string
)

// SetCORSOptions configures CORS behavior for the HTTP server.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsEnabled = enabled
	corsAllowedOrigins = append([]string(nil), origins...)
	corsAllowedMethods = append([]string(nil), methods...)
	corsAllowedHeaders = append([]string(nil), headers...)
}
