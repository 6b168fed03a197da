package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/swof/bau-api-go/pkg/scheduler"
)

// Config holds the runtime settings read from the environment
type Config struct {
	Port    string
	GinMode string

	DatabaseURL    string
	DataPath       string
	EngineersTable string
	RosterFile     string
	RosterLimit    int

	SlotDuration time.Duration
	SeamStrategy string

	LogLevel  string
	LogFormat string

	RateLimitRPS   float64
	RateLimitBurst int

	AnnounceCron string
}

// LoadDotEnv loads the first .env found in the working directory or its parents.
// A missing file is not an error.
func LoadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", "8000"),
		GinMode:        os.Getenv("GIN_MODE"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DataPath:       getenv("DATA_PATH", "engineers.db"),
		EngineersTable: getenv("ENGINEERS_TABLE", "engineers"),
		RosterFile:     os.Getenv("ROSTER_FILE"),
		SeamStrategy:   getenv("SEAM_STRATEGY", scheduler.StrategyTripleAdjacent),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogFormat:      getenv("LOG_FORMAT", "console"),
		AnnounceCron:   strings.TrimSpace(os.Getenv("ANNOUNCE_CRON")),
	}

	var err error
	if cfg.RosterLimit, err = intEnv("ROSTER_LIMIT", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = intEnv("RATE_LIMIT_BURST", 40); err != nil {
		return nil, err
	}

	rps := getenv("RATE_LIMIT_RPS", "20")
	if cfg.RateLimitRPS, err = strconv.ParseFloat(rps, 64); err != nil || cfg.RateLimitRPS < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS: invalid value %q", rps)
	}

	slot := getenv("SLOT_DURATION", scheduler.DefaultSlotDuration.String())
	if cfg.SlotDuration, err = time.ParseDuration(slot); err != nil {
		return nil, fmt.Errorf("SLOT_DURATION: %w", err)
	}
	if cfg.SlotDuration < time.Millisecond {
		return nil, fmt.Errorf("SLOT_DURATION: %w", scheduler.ErrInvalidSlotDuration)
	}

	if _, err := scheduler.StrategyByName(cfg.SeamStrategy, nil); err != nil {
		return nil, fmt.Errorf("SEAM_STRATEGY: %w", err)
	}

	switch cfg.LogFormat {
	case "console", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT: invalid value %q", cfg.LogFormat)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: invalid value %q", key, v)
	}
	return n, nil
}
