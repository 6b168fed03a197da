package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/swof/bau-api-go/pkg/app"
	"github.com/swof/bau-api-go/pkg/config"
	"github.com/swof/bau-api-go/pkg/logging"
)

func main() {
	// Load .env if it exists
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		boot := logging.New("info", "console", os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	a, err := setup(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialise service")
	}

	if a.Announcer != nil {
		if err := a.Announcer.Start(context.Background(), cfg.AnnounceCron); err != nil {
			log.Fatal().Err(err).Msg("could not start announcer")
		}
		defer a.Announcer.Stop()
	}

	log.Info().
		Str("port", cfg.Port).
		Str("strategy", cfg.SeamStrategy).
		Dur("slot", cfg.SlotDuration).
		Msg("server starting")
	if err := a.Router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("could not run server")
	}
}

// setup selects the gin mode and builds the service
func setup(cfg *config.Config, log zerolog.Logger) (*app.App, error) {
	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}
	return app.New(cfg, log)
}
