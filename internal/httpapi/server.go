package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"melodyd/internal/manager"
	"melodyd/internal/sequence"
	"melodyd/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	ListCheckpoints() []types.Checkpoint
	Genres() []types.GenreInfo
	Status() types.StatusResponse
	Generate(ctx context.Context, req types.GenerateRequest) (*sequence.NoteSequence, error)
	Ready() bool
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// Compression for JSON endpoints (MIDI bodies are small and binary)
	r.Use(middleware.Compress(5, "application/json"))
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "melodyd is running"})
	})

	r.Get("/checkpoints", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.CheckpointsResponse{Checkpoints: svc.ListCheckpoints()}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/genres", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(types.GenresResponse{Genres: svc.Genres()}); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
			return
		}
	})

	r.Get("/generate", func(w http.ResponseWriter, r *http.Request) {
		req, err := parseGenerateQuery(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}

		start := time.Now()
		lvl := requestLogLevel(r)
		if lvl >= LevelInfo && zlog != nil {
			z := zlog.Info().Str("path", r.URL.Path).
				Str("genre", req.Genre).Str("instrument", req.Instrument).Int("bpm", req.BPM)
			if rid := middleware.GetReqID(r.Context()); rid != "" {
				z = z.Str("request_id", rid)
			}
			z.Msg("generate start")
		}

		// Join server base context with request context so shutdown cancels work too.
		joinedCtx, cancel := joinContexts(serverBaseCtx, r.Context())
		defer cancel()
		seq, err := svc.Generate(joinedCtx, req)
		if err != nil {
			// If context was canceled (client disconnect), just return.
			if r.Context().Err() != nil || serverBaseCtx.Err() != nil {
				return
			}
			status := statusForError(err)
			if status == http.StatusTooManyRequests {
				IncrementBackpressure("generate")
			}
			writeJSONError(w, status, err.Error())
			logGenerateEnd(r, lvl, status, start, err)
			return
		}

		var buf bytes.Buffer
		if err := seq.WriteSMF(&buf); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode midi: "+err.Error())
			logGenerateEnd(r, lvl, http.StatusInternalServerError, start, err)
			return
		}

		genID := uuid.NewString()
		filename := fmt.Sprintf("%s_%s_%dbpm.mid", req.Genre, req.Instrument, req.BPM)
		if outputDir != "" {
			persistRender(filename, genID, buf.Bytes())
		}
		CountRender(req.Genre, req.Instrument)

		w.Header().Set("Content-Type", "audio/midi")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.Header().Set("X-Generation-Id", genID)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = w.Write(buf.Bytes())
		logGenerateEnd(r, lvl, http.StatusOK, start, nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// parseGenerateQuery extracts and defaults the /generate query parameters.
func parseGenerateQuery(r *http.Request) (types.GenerateRequest, error) {
	q := r.URL.Query()
	req := types.GenerateRequest{
		Instrument: q.Get("instrument"),
		Genre:      q.Get("genre"),
		BPM:        manager.DefaultBPM,
	}
	if req.Instrument == "" {
		req.Instrument = "lead"
	}
	if req.Genre == "" {
		req.Genre = defaultGenre
	}
	if v := q.Get("bpm"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("bpm must be an integer")
		}
		req.BPM = n
	}
	if v := q.Get("temperature"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return req, fmt.Errorf("temperature must be a non-negative number")
		}
		req.Temperature = f
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("seed must be an integer")
		}
		req.Seed = n
	}
	return req, nil
}

// statusForError maps well-known manager errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case manager.IsInvalidRequest(err):
		return http.StatusBadRequest
	case manager.IsModelNotFound(err):
		return http.StatusNotFound
	case manager.IsTooBusy(err):
		return http.StatusTooManyRequests
	case manager.IsDependencyUnavailable(err):
		return http.StatusServiceUnavailable
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

func logGenerateEnd(r *http.Request, lvl LogLevel, status int, start time.Time, err error) {
	if lvl < LevelInfo || zlog == nil {
		return
	}
	z := zlog.Info().Int("status", status).Dur("dur", time.Since(start))
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		z = z.Str("request_id", rid)
	}
	if err != nil {
		z = z.Err(err)
	}
	z.Msg("generate end")
}

// persistRender writes a copy of the rendered file under the configured
// output directory. Failures are logged, never surfaced to the client.
func persistRender(filename, genID string, data []byte) {
	name := fmt.Sprintf("%s_%s.mid", filename[:len(filename)-len(".mid")], genID[:8])
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil && zlog != nil {
		zlog.Warn().Err(err).Str("path", path).Msg("persist render failed")
	}
}
