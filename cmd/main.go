package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"

	"github.com/courtstats/courtstats/internal/adapters/http/api"
	"github.com/courtstats/courtstats/internal/adapters/progress"
	"github.com/courtstats/courtstats/internal/adapters/source"
	"github.com/courtstats/courtstats/internal/app"
	"github.com/courtstats/courtstats/internal/config"
	"github.com/courtstats/courtstats/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	remoteRateBurst   = 1
)

func main() {
	// Disable default Go metrics collection; the engine registers its own
	// metrics on a custom registry.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env).
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	loader := source.NewLoader(
		source.WithDataDir(cfg.DataDir),
		source.WithManifestName(cfg.ManifestName),
		source.WithPlayersName(cfg.PlayersName),
		source.WithRemoteBaseURL(cfg.RemoteBaseURL),
		source.WithRemoteFromYear(cfg.RemoteFromYear),
		source.WithRateLimit(cfg.FetchRatePerSec, remoteRateBurst),
		source.WithLogger(log.Named("source")),
	)

	notifier := progress.NewChannelNotifier()
	defer notifier.Close()
	go logProgress(ctx, log, notifier)

	svc := app.New(
		app.WithSource(loader),
		app.WithProgressNotifier(notifier),
		app.WithMaxSearchResults(cfg.MaxSearchResults),
		app.WithMinRateMatches(cfg.MinRateMatches),
		app.WithTopChampions(cfg.TopChampions),
		app.WithRecentFinalsLimit(cfg.RecentFinalsLimit),
		app.WithLogger(log.Named("engine")),
	)

	// Initial load. Query endpoints answer 503 until it completes; a
	// failed load leaves the service up for a later POST /reload.
	if err := svc.Load(ctx); err != nil {
		log.Error(ctx, "initial dataset load failed", logger.Error(err))
	}

	router := mux.NewRouter()
	apiServer := api.NewServer(svc, svc, api.WithSearchLimit(cfg.MaxSearchResults))
	apiServer.Register(ctx, router)

	// The explorer UI runs in a browser; CORS wraps the whole router.
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           c.Handler(router),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// logProgress surfaces load progress events as log lines.
func logProgress(ctx context.Context, log logger.Logger, n *progress.ChannelNotifier) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-n.Events():
			if !ok {
				return
			}
			switch e.Kind {
			case progress.KindSeasonMissing:
				log.Warn(ctx, "season missing or stale",
					logger.Int("year", e.Year),
					logger.String("season", e.Season),
					logger.String("detail", e.Detail),
				)
			case progress.KindSeasonLoaded:
				log.Debug(ctx, "season loaded",
					logger.Int("year", e.Year),
					logger.String("season", e.Season),
					logger.Int("rows", e.Rows),
				)
			case progress.KindLoadDone:
				log.Info(ctx, "load finished", logger.Int("rows", e.Rows))
			}
		}
	}
}
