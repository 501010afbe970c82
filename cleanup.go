package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// startOrphanSweeper starts the background service that removes image files
// no record references. Ingestion writes the file before the row, so a failed
// row creation can leave a stray file behind; the sweeper collects those.
// Disabled when the configured interval is zero.
func (app *App) startOrphanSweeper(ctx context.Context) {
	interval := time.Duration(app.cfg.Storage.SweepInterval) * time.Second
	if interval <= 0 {
		return
	}

	app.log.Info("starting orphan sweeper", zap.Duration("interval", interval))
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				app.sweepOrphans(interval)
			}
		}
	}()
}

// sweepOrphans removes files in the image dir that no row references. Only
// files older than minAge are touched, so an upload whose row is still being
// written is never swept. All failures are logged and swallowed.
func (app *App) sweepOrphans(minAge time.Duration) {
	entries, err := os.ReadDir(app.cfg.Storage.ImageDir)
	if err != nil {
		if !os.IsNotExist(err) {
			app.log.Warn("orphan sweep: cannot read image dir", zap.Error(err))
		}
		return
	}

	cutoff := time.Now().Add(-minAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		referenced, err := app.store.PathExists("/images/" + entry.Name())
		if err != nil {
			app.log.Warn("orphan sweep: lookup failed",
				zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		if referenced {
			continue
		}

		path := filepath.Join(app.cfg.Storage.ImageDir, entry.Name())
		if err := os.Remove(path); err != nil {
			app.log.Warn("orphan sweep: remove failed",
				zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}

	if removed > 0 {
		app.log.Info("orphan sweep removed stray files", zap.Int("count", removed))
	}
}
