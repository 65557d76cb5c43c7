package janitor

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/clipfetch/clipfetch/pkg/logger"
)

var log = logger.Get("Janitor")

// Config controls the retention policy for session workspaces. A
// retention of zero hours disables eviction entirely, matching the
// keep-forever behaviour of earlier revisions.
type Config struct {
	RetentionHours int `yaml:"retention_hours" env:"JANITOR_RETENTION_HOURS" env-default:"24"`
	SweepMinutes   int `yaml:"sweep_minutes" env:"JANITOR_SWEEP_MINUTES" env-default:"15"`
}

// Janitor evicts session workspaces beneath the download root once
// they exceed the configured retention age. Only whole session
// directories are removed; files handed out via the file-serving
// endpoint remain available until their session expires.
type Janitor struct {
	config Config
	root   string
}

func New(config Config, root string) *Janitor {
	return &Janitor{config: config, root: root}
}

// Run sweeps on a fixed interval until the context is cancelled. When
// retention is disabled the janitor idles rather than returning, so
// the service lifecycle treats it like any other long-running service.
func (janitor *Janitor) Run(ctx context.Context) error {
	if janitor.config.RetentionHours <= 0 {
		log.Infof("Workspace eviction disabled, sessions will be retained indefinitely\n")
		<-ctx.Done()
		return nil
	}

	sweepMinutes := janitor.config.SweepMinutes
	if sweepMinutes <= 0 {
		sweepMinutes = 15
	}

	ticker := time.NewTicker(time.Duration(sweepMinutes) * time.Minute)
	defer ticker.Stop()

	janitor.Sweep()
	for {
		select {
		case <-ticker.C:
			janitor.Sweep()
		case <-ctx.Done():
			return nil
		}
	}
}

// Sweep removes every session directory whose modification time is
// older than the retention window. Failures are logged and skipped;
// a partially failed sweep is retried naturally on the next tick.
func (janitor *Janitor) Sweep() {
	cutoff := time.Now().Add(-time.Duration(janitor.config.RetentionHours) * time.Hour)

	entries, err := os.ReadDir(janitor.root)
	if err != nil {
		log.Warnf("Cannot sweep download root %s: %s\n", janitor.root, err.Error())
		return
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}

		path := filepath.Join(janitor.root, entry.Name())
		if err := os.RemoveAll(path); err != nil {
			log.Warnf("Failed to evict expired session %s: %s\n", path, err.Error())
			continue
		}

		log.Emit(logger.REMOVE, "Evicted expired session workspace %s\n", path)
	}
}
