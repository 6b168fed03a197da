package handler

import (
	"net/http"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/swof/bau-api-go/pkg/app"
	"github.com/swof/bau-api-go/pkg/config"
	"github.com/swof/bau-api-go/pkg/logging"
)

var (
	once    sync.Once
	r       *gin.Engine
	initErr error
)

// setup wires the router on the first request
func setup() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}
	log := logging.New(cfg.LogLevel, "json", os.Stdout)

	// the announcer needs a long-lived process and is not started here
	a, err := app.New(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("could not initialise service")
		initErr = err
		return
	}
	r = a.Router
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	once.Do(setup)
	if initErr != nil {
		boot := logging.New("info", "json", os.Stderr)
		boot.Error().Err(initErr).Msg("service unavailable")
		http.Error(w, "Service unavailable", http.StatusInternalServerError)
		return
	}
	r.ServeHTTP(w, req)
}
