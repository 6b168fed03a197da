package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/swof/bau-api-go/pkg/logging"
)

// RouterOptions configures the shared middleware of NewRouter
type RouterOptions struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires the duty endpoints onto a fresh gin engine
func NewRouter(h *Handler, log zerolog.Logger, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logging.GinLogger(log), CORSMiddleware())
	r.Use(RateLimitMiddleware(opts.RateLimitRPS, opts.RateLimitBurst))

	r.GET("/", h.Root)
	r.GET("/baus/:date", h.GetBaus)
	r.GET("/engineers", h.ListEngineers)
	r.GET("/schedule", h.GetSchedule)
	r.GET("/schedule/csv", h.GetScheduleCSV)
	r.GET("/usage", h.GetUsage)

	api := r.Group("/api")
	{
		api.POST("/baus", h.PostBaus)
		api.POST("/roster/validate", h.ValidateRoster)
	}

	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	}

	return r
}
