package mobile

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"chesstactics/internal/engine"
	"chesstactics/internal/level"
	"chesstactics/internal/logging"
	"chesstactics/internal/server/game"
	httpserver "chesstactics/internal/server/http"
)

// StartServer starts the local HTTP server.
// webDir: physical path to the extracted web assets
// levelsFile: optional YAML catalog; empty uses the built-in levels
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, levelsFile string, port string) {
	log := logging.Must("info", "json")

	var src level.Source = level.Static(level.DefaultCatalog())
	if levelsFile != "" {
		fs := level.NewFileSource(levelsFile, log)
		if _, err := fs.Catalog(context.Background()); err != nil {
			log.Warn("level catalog unusable, using built-in levels", zap.String("path", fs.Path()), zap.Error(err))
		} else {
			src = fs
		}
	}

	games := game.NewManager(src, engine.NewEngine(), log)
	h := httpserver.NewHandler(games, httpserver.WithLogger(log))
	srv := httpserver.NewServer(h, webDir)

	// Run in background so it doesn't block the Android UI thread
	go func() {
		if err := http.ListenAndServe("127.0.0.1:"+port, srv); err != nil {
			log.Error("server", zap.Error(err))
		}
	}()
}
