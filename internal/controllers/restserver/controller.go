// Package restserver serves the panchang engine over HTTP: JSON/MessagePack
// endpoints, a websocket snapshot stream and prometheus metrics.
package restserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/chrissnell/astrotime/internal/log"
	"github.com/chrissnell/astrotime/pkg/astro"
	"github.com/chrissnell/astrotime/pkg/config"
	"github.com/chrissnell/astrotime/pkg/panchang"
)

// Controller represents the REST server controller
type Controller struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	restConfig config.RESTServerData
	Server     http.Server

	location  astro.GeoLocation
	zone      *time.Location
	locations map[string]namedLocation
	cache     *panchang.Cache
	metrics   *Metrics
	handlers  *Handlers

	// now is the clock for requests without a time parameter
	now func() time.Time
}

// namedLocation is a stored location requests can select with ?location=
type namedLocation struct {
	geo  astro.GeoLocation
	zone *time.Location
}

// NewController creates a new REST server controller. cfg must already be
// validated. locations are the named locations selectable per request.
func NewController(ctx context.Context, wg *sync.WaitGroup, cfg *config.ConfigData, locations []config.LocationData) (*Controller, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration provided")
	}
	rc := cfg.RESTServer
	if rc.StreamInterval <= 0 {
		rc.StreamInterval = config.DefaultStreamInterval
	}

	named := make(map[string]namedLocation, len(locations))
	for _, l := range locations {
		if err := l.Validate(); err != nil {
			return nil, err
		}
		named[l.Name] = namedLocation{
			geo:  astro.GeoLocation{Latitude: l.Latitude, Longitude: l.Longitude},
			zone: l.TimeZone(),
		}
	}

	ctrl := &Controller{
		ctx:        ctx,
		wg:         wg,
		restConfig: rc,
		location: astro.GeoLocation{
			Latitude:  cfg.Location.Latitude,
			Longitude: cfg.Location.Longitude,
		},
		zone:      cfg.Location.TimeZone(),
		locations: named,
		cache:     panchang.NewCache(cfg.CacheResolution),
		now:       time.Now,
	}
	ctrl.metrics = NewMetrics(ctrl.cache)
	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = fmt.Sprintf("%v:%v", rc.ListenAddr, rc.HTTPPort)
	ctrl.Server.Handler = ctrl.setupRouter()
	ctrl.Server.ReadHeaderTimeout = 10 * time.Second

	return ctrl, nil
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	log.Infof("Starting REST server on %s", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if c.restConfig.TLSCertPath != "" && c.restConfig.TLSKeyPath != "" {
			if err := c.Server.ListenAndServeTLS(c.restConfig.TLSCertPath, c.restConfig.TLSKeyPath); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		} else {
			if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
				log.Errorf("REST server error: %v", err)
			}
		}
	}()

	go func() {
		<-c.ctx.Done()
		log.Info("Shutting down the REST server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Server.Shutdown(shutdownCtx)
	}()

	return nil
}

// Handler returns the router, for tests and embedding
func (c *Controller) Handler() http.Handler {
	return c.Server.Handler
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(c.requestMiddleware)

	api := router.Methods(http.MethodGet).Subrouter()
	api.HandleFunc("/panchang", c.handlers.GetPanchang)
	api.HandleFunc("/longitudes", c.handlers.GetLongitudes)
	api.HandleFunc("/suntimes", c.handlers.GetSunTimes)
	api.HandleFunc("/moontimes", c.handlers.GetMoonTimes)
	api.HandleFunc("/api/version", c.handlers.GetVersion)
	api.HandleFunc("/ws", c.handlers.StreamSnapshots)
	api.Handle("/metrics", c.metrics.Handler())

	return router
}

// snapshot computes or fetches a snapshot and records the compute time
func (c *Controller) snapshot(t time.Time, loc astro.GeoLocation, cached bool) panchang.Snapshot {
	start := time.Now()
	var s panchang.Snapshot
	if cached {
		s = c.cache.Snapshot(t, loc)
	} else {
		s = panchang.NewSnapshot(t, loc)
	}
	c.metrics.ObserveCompute(time.Since(start))
	return s
}
