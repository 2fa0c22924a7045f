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

	"agentd/internal/common/fsutil"
	"agentd/internal/config"
	"agentd/internal/httpapi"
	"agentd/internal/registry"
	"agentd/internal/scheduler"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("AGENTD_ADDR"); v != "" {
		defaultAddr = v
	}
	defaultAgents := "~/agentd/agents.yaml"
	if v := os.Getenv("AGENTD_AGENTS"); v != "" {
		defaultAgents = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	agentsFile := flag.String("agents", defaultAgents, "Registry file mapping agents to resources (yaml/json/toml)")
	configPath := flag.String("config", os.Getenv("AGENTD_CONFIG"), "Optional config file (yaml/json/toml)")
	keepAlive := flag.Duration("keep-alive", 0, "Idle time before the loaded resource is evicted (0=default 5m)")
	evictInterval := flag.Duration("evict-interval", 0, "Eviction check interval (0=default 30s)")
	maxQueueDepth := flag.Int("max-queue-depth", 0, "Max pending requests before submit rejects (0=unbounded)")
	logLevel := flag.String("log-level", os.Getenv("AGENTD_LOG_LEVEL"), "Log level: debug|info|warn|error")
	flag.Parse()

	var cfg config.Config
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			l := zerolog.New(os.Stderr)
			l.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
		}
		cfg = c
	}
	// Flags take precedence over file values; file values over built-in defaults.
	if cfg.Addr == "" {
		cfg.Addr = *addr
	}
	if cfg.AgentsFile == "" {
		cfg.AgentsFile = *agentsFile
	}
	if *keepAlive > 0 {
		cfg.KeepAliveSeconds = int(keepAlive.Seconds())
	}
	if *evictInterval > 0 {
		cfg.EvictIntervalSeconds = int(evictInterval.Seconds())
	}
	if *maxQueueDepth > 0 {
		cfg.MaxQueueDepth = *maxQueueDepth
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := newLogger(cfg.LogLevel)

	if p, err := fsutil.ExpandHome(cfg.AgentsFile); err != nil || !fsutil.PathExists(p) {
		logger.Fatal().Str("path", cfg.AgentsFile).Msg("agent registry file not found")
	}
	reg, err := registry.Load(cfg.AgentsFile)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.AgentsFile).Msg("failed to load agent registry")
	}

	loader := buildLoader(cfg, logger)
	exec := scheduler.NewHTTPExecutor(nil)

	coord := scheduler.New(reg, loader, exec, scheduler.Config{
		KeepAlive:     time.Duration(cfg.KeepAliveSeconds) * time.Second,
		EvictInterval: time.Duration(cfg.EvictIntervalSeconds) * time.Second,
		MaxQueueDepth: cfg.MaxQueueDepth,
		Logger:        logger,
	})
	defer coord.Close()

	httpapi.SetLogger(logger)
	mux := httpapi.NewMux(coord)
	srv := &http.Server{Addr: cfg.Addr, Handler: mux}

	go func() {
		logger.Info().Str("addr", cfg.Addr).Str("agents", cfg.AgentsFile).Int("agent_count", len(reg.Agents())).Msg("agentd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func buildLoader(cfg config.Config, logger zerolog.Logger) scheduler.ResourceLoader {
	timeout := time.Duration(cfg.LoaderTimeoutSeconds) * time.Second
	switch cfg.Loader {
	case "llama":
		return scheduler.NewLlamaLoader(2048, 0)
	case "", "exec":
		loadArgv := cfg.LoadCommand
		unloadArgv := cfg.UnloadCommand
		if len(loadArgv) == 0 {
			loadArgv = []string{"podman", "pod", "start"}
		}
		if len(unloadArgv) == 0 {
			unloadArgv = []string{"podman", "pod", "stop"}
		}
		return scheduler.NewExecLoader(loadArgv, unloadArgv, timeout)
	default:
		logger.Fatal().Str("loader", cfg.Loader).Msg("unknown loader")
		return nil
	}
}
