package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"melodyd/internal/common/fsutil"
	"melodyd/internal/config"
	"melodyd/internal/httpapi"
	"melodyd/internal/manager"
	"melodyd/internal/registry"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("MELODYD_ADDR"); v != "" {
		defaultAddr = v
	}
	defaultCkpts := "~/checkpoints/music"
	if v := os.Getenv("MELODYD_CHECKPOINTS_DIR"); v != "" {
		defaultCkpts = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	checkpointsDir := flag.String("checkpoints-dir", defaultCkpts, "Directory to scan for *.ckpt/*.tar checkpoint files")
	outputDir := flag.String("output-dir", "", "Optional directory to persist rendered MIDI files")
	memBudgetMB := flag.Int("mem-budget-mb", 0, "Memory budget in MB for all loaded checkpoints (0=unlimited)")
	memMarginMB := flag.Int("mem-margin-mb", 0, "Reserved memory margin in MB to keep free")
	defaultGenre := flag.String("default-genre", "pop", "Default genre when request omits genre")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated list of allowed CORS origins (empty disables CORS)")
	configPath := flag.String("config", "", "Optional config file (yaml/json/toml); flags override file values")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("component", "melodyd").Logger()

	cfg := config.Config{
		Addr:           *addr,
		CheckpointsDir: *checkpointsDir,
		OutputDir:      *outputDir,
		MemBudgetMB:    *memBudgetMB,
		MemMarginMB:    *memMarginMB,
		DefaultGenre:   *defaultGenre,
	}
	if *corsOrigins != "" {
		cfg.CORSOrigins = strings.Split(*corsOrigins, ",")
	}
	if *configPath != "" {
		fileCfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config file")
		}
		cfg = mergeConfig(fileCfg, cfg)
	}

	// Load registry by scanning the checkpoints dir for *.ckpt/*.tar
	reg, err := registry.LoadDir(cfg.CheckpointsDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.CheckpointsDir).Msg("failed to load checkpoints")
	}
	resolved := 0
	for _, ck := range reg {
		if ck.Path != "" {
			resolved++
		}
	}
	log.Info().Int("known", len(reg)).Int("on_disk", resolved).Msg("checkpoint catalog loaded")

	mgr := manager.NewWithConfig(manager.ManagerConfig{
		Registry:      reg,
		BudgetMB:      cfg.MemBudgetMB,
		MarginMB:      cfg.MemMarginMB,
		DefaultGenre:  cfg.DefaultGenre,
		MaxQueueDepth: cfg.MaxQueueDepth,
		MaxWait:       time.Duration(cfg.MaxWaitSec) * time.Second,
		Logger:        log.With().Str("component", "manager").Logger(),
	})

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetDefaultGenre(cfg.DefaultGenre)
	if cfg.OutputDir != "" {
		if err := fsutil.EnsureDir(cfg.OutputDir); err != nil {
			log.Fatal().Err(err).Str("dir", cfg.OutputDir).Msg("failed to create output dir")
		}
		httpapi.SetOutputDir(cfg.OutputDir)
	}
	if len(cfg.CORSOrigins) > 0 {
		httpapi.SetCORSOptions(true, cfg.CORSOrigins,
			[]string{http.MethodGet, http.MethodOptions}, []string{"*"})
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	mux := httpapi.NewMux(mgr)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		log.Info().Str("addr", cfg.Addr).Str("checkpoints_dir", cfg.CheckpointsDir).Msg("melodyd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}

// mergeConfig overlays non-zero flag values on top of file values.
func mergeConfig(file, flags config.Config) config.Config {
	out := file
	if flags.Addr != "" && flags.Addr != ":8080" {
		out.Addr = flags.Addr
	}
	if out.Addr == "" {
		out.Addr = flags.Addr
	}
	if flags.CheckpointsDir != "" && flags.CheckpointsDir != "~/checkpoints/music" {
		out.CheckpointsDir = flags.CheckpointsDir
	}
	if out.CheckpointsDir == "" {
		out.CheckpointsDir = flags.CheckpointsDir
	}
	if flags.OutputDir != "" {
		out.OutputDir = flags.OutputDir
	}
	if flags.MemBudgetMB != 0 {
		out.MemBudgetMB = flags.MemBudgetMB
	}
	if flags.MemMarginMB != 0 {
		out.MemMarginMB = flags.MemMarginMB
	}
	if flags.DefaultGenre != "" && flags.DefaultGenre != "pop" {
		out.DefaultGenre = flags.DefaultGenre
	}
	if out.DefaultGenre == "" {
		out.DefaultGenre = flags.DefaultGenre
	}
	if len(flags.CORSOrigins) > 0 {
		out.CORSOrigins = flags.CORSOrigins
	}
	return out
}
