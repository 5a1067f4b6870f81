package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/zap"

	"chesstactics/internal/config"
	"chesstactics/internal/engine"
	"chesstactics/internal/level"
	"chesstactics/internal/logging"
	"chesstactics/internal/server/game"
	httpserver "chesstactics/internal/server/http"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // headless hosts have no browser
}

func main() {
	cfgPath := flag.String("config", "", "path to YAML config (optional)")
	addr := flag.String("addr", "", "listen address (overrides config)")
	webDir := flag.String("web", "", "directory with index.html / js / css (overrides config)")
	levelsFile := flag.String("levels", "", "YAML level catalog (overrides config)")
	logLevel := flag.String("log-level", "", "debug | info | warn | error (overrides config)")
	open := flag.Bool("open", true, "open the default browser once listening")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logging.Must("info", "console").Fatal("config", zap.Error(err))
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}
	if *levelsFile != "" {
		cfg.LevelsFile = *levelsFile
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log := logging.Must(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	var src level.Source = level.Static(level.DefaultCatalog())
	if cfg.LevelsFile != "" {
		fs := level.NewFileSource(cfg.LevelsFile, log.Named("levels"))
		if _, err := fs.Catalog(context.Background()); err != nil {
			log.Fatal("level catalog", zap.String("path", fs.Path()), zap.Error(err))
		}
		src = fs
	}

	ai := engine.NewEngine(engine.WithLogger(log.Named("ai")))
	games := game.NewManager(src, ai, log.Named("games"))
	api := httpserver.NewHandler(games,
		httpserver.WithLogger(log.Named("http")),
		httpserver.WithPacing(httpserver.Pacing{
			TurnStart:   cfg.EnemyTurnStart(),
			Preview:     cfg.EnemyPreview(),
			AfterAction: cfg.EnemyAfterAction(),
		}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go games.RunSweeper(ctx, time.Minute, cfg.SessionTTL)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpserver.NewServer(api, cfg.WebDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("listening", zap.String("addr", cfg.Addr), zap.String("web", cfg.WebDir))

	if *open {
		// give the listener a moment before the browser connects
		go func() {
			time.Sleep(100 * time.Millisecond)
			openBrowser("http://127.0.0.1" + cfg.Addr)
		}()
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
		log.Info("stopped")
	}
}
