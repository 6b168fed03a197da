// Package app assembles the duty API from its configuration.
package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/swof/bau-api-go/pkg/announce"
	"github.com/swof/bau-api-go/pkg/config"
	"github.com/swof/bau-api-go/pkg/database"
	"github.com/swof/bau-api-go/pkg/handlers"
	"github.com/swof/bau-api-go/pkg/metrics"
	"github.com/swof/bau-api-go/pkg/roster"
	"github.com/swof/bau-api-go/pkg/scheduler"
)

// App is a fully wired duty API
type App struct {
	Router    *gin.Engine
	Store     *database.Store
	Service   *scheduler.Service
	Announcer *announce.Announcer
}

// New opens the database, selects the roster source and builds the router.
// The announcer is created only when cfg.AnnounceCron is set; it is not started.
func New(cfg *config.Config, log zerolog.Logger) (*App, error) {
	db, err := database.InitDB(database.Options{
		DatabaseURL: cfg.DatabaseURL,
		DataPath:    cfg.DataPath,
		Silent:      true,
	})
	if err != nil {
		return nil, err
	}
	store, err := database.NewStore(db, cfg.EngineersTable, cfg.RosterLimit)
	if err != nil {
		return nil, err
	}

	var provider scheduler.RosterProvider = store
	if cfg.RosterFile != "" {
		provider = roster.NewFile(cfg.RosterFile)
		log.Info().Str("path", cfg.RosterFile).Msg("reading roster from file")
	}

	strategy, err := scheduler.StrategyByName(cfg.SeamStrategy, nil)
	if err != nil {
		return nil, fmt.Errorf("seam strategy: %w", err)
	}
	svc := scheduler.NewService(provider, scheduler.NewScheduler(cfg.SlotDuration, strategy))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	h := &handlers.Handler{
		Service: svc,
		Usage:   store,
		Metrics: metrics.New(reg, ""),
		Log:     log,
	}
	router := handlers.NewRouter(h, log, handlers.RouterOptions{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})

	a := &App{Router: router, Store: store, Service: svc}
	if cfg.AnnounceCron != "" {
		a.Announcer = announce.New(svc, log)
	}
	return a, nil
}
