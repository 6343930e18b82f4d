package root

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"tracknest/internal/activity"
	"tracknest/internal/config"
	"tracknest/internal/logging"
	"tracknest/internal/store"
)

// app bundles everything a subcommand needs over the shared data directory.
type app struct {
	cfg config.Config
	st  *store.Store
	act *activity.Log
	log logging.Logger
}

func openApp(ctx context.Context) (*app, func(), error) {
	path := cfgPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	_ = os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755)
	log, closeLog := openLogger(cfg.LogFile)

	st, err := store.Open(ctx, cfg.DataFile, log)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	// The activity log is best-effort; a broken db never blocks the tracker.
	act, err := activity.Open(ctx, cfg.ActivityDB)
	if err != nil {
		log.Warn(ctx, "activity log unavailable", "err", err)
		act = nil
	}

	cleanup := func() {
		if act != nil {
			_ = act.Close()
		}
		closeLog()
	}
	return &app{cfg: cfg, st: st, act: act, log: log}, cleanup, nil
}

// openLogger writes structured logs to the configured file so the terminal
// stays clean for the menus. Falls back to discarding when the file cannot
// be opened.
func openLogger(path string) (logging.Logger, func()) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return logging.NewText(io.Discard, slog.LevelInfo), func() {}
	}
	return logging.NewText(f, slog.LevelInfo), func() { _ = f.Close() }
}
