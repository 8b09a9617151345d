// Package app wires configuration, logging and the REST controller into the
// astrotimed daemon.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/chrissnell/astrotime/internal/controllers/restserver"
	"github.com/chrissnell/astrotime/internal/log"
	"github.com/chrissnell/astrotime/pkg/config"
)

// App represents the main application
type App struct {
	cfg       *config.ConfigData
	locations []config.LocationData
}

// New creates a new application instance. locations are the named
// locations the REST endpoints accept in ?location=.
func New(cfg *config.ConfigData, locations []config.LocationData) *App {
	return &App{
		cfg:       cfg,
		locations: locations,
	}
}

// Run starts the application and blocks until a signal arrives or ctx is
// cancelled.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rest, err := restserver.NewController(ctx, &wg, a.cfg, a.locations)
	if err != nil {
		return err
	}
	if err := rest.StartController(); err != nil {
		return err
	}

	log.Infow("astrotimed started",
		"location", a.cfg.Location.Name,
		"latitude", a.cfg.Location.Latitude,
		"longitude", a.cfg.Location.Longitude,
		"timezone", a.cfg.Location.Timezone,
		"named_locations", len(a.locations),
		"stream_interval", a.cfg.RESTServer.StreamInterval,
		"cache_resolution", a.cfg.CacheResolution,
	)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
