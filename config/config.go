package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"agripredict/pkg/predictor"
)

type AppConfig struct {
	Port          string
	DBPath        string
	ReferencePath string

	Predictor           string
	ModelEndpoint       string
	ModelTimeout        time.Duration
	PredictorFixedYield *float64 // nil when PREDICTOR_FIXED_YIELD is unset

	YieldCategoryMode string
	HistoryEnabled    bool

	LogLevel  string
	LogFormat string
}

// Load reads .env when present, then the environment. It returns an error
// only for values that are set but unparseable.
func Load() (AppConfig, error) {
	envErr := godotenv.Load()

	get := func(k, def string) string {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:              get("PORT", "8080"),
		DBPath:            get("DB_PATH", "agripredict.db"),
		ReferencePath:     get("REFERENCE_PATH", ""),
		Predictor:         get("PREDICTOR", "auto"),
		ModelEndpoint:     get("MODEL_ENDPOINT", ""),
		YieldCategoryMode: get("YIELD_CATEGORY_MODE", "fixed"),
		LogLevel:          get("LOG_LEVEL", "info"),
		LogFormat:         get("LOG_FORMAT", "json"),
	}

	var err error
	if cfg.ModelTimeout, err = time.ParseDuration(get("MODEL_TIMEOUT", "10s")); err != nil {
		return cfg, fmt.Errorf("MODEL_TIMEOUT: %w", err)
	}
	if v := get("PREDICTOR_FIXED_YIELD", ""); v != "" {
		y, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("PREDICTOR_FIXED_YIELD: %w", err)
		}
		cfg.PredictorFixedYield = &y
	}
	if cfg.HistoryEnabled, err = strconv.ParseBool(get("HISTORY_ENABLED", "true")); err != nil {
		return cfg, fmt.Errorf("HISTORY_ENABLED: %w", err)
	}
	if envErr != nil && !os.IsNotExist(envErr) {
		return cfg, fmt.Errorf(".env: %w", envErr)
	}
	return cfg, nil
}

func (c AppConfig) PredictorOptions() predictor.Options {
	return predictor.Options{
		Kind:       c.Predictor,
		Endpoint:   c.ModelEndpoint,
		Timeout:    c.ModelTimeout,
		FixedYield: c.PredictorFixedYield,
	}
}
