package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	RunAddress     string
	APIBaseURL     string
	TokenSecret    string
	Timezone       string
	RequestTimeout time.Duration
	Location       *time.Location
	Logger         *zap.SugaredLogger
}

func NewConfig() *Config {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout"}

	logger := zap.Must(logCfg.Build())

	// .env is optional; real environment wins over it
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Sugar().Warnf("load .env: %v", err)
	}

	cfg := &Config{}
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "console HTTP address")
	flag.StringVar(&cfg.APIBaseURL, "u", "http://localhost:8090", "remote API base URL")
	flag.StringVar(&cfg.TokenSecret, "s", "", "HS256 secret to verify tokens with")
	flag.StringVar(&cfg.Timezone, "tz", "Local", "time zone for dates without one")
	flag.DurationVar(&cfg.RequestTimeout, "t", 10*time.Second, "remote API request timeout")
	flag.Parse()

	cfg.Logger = logger.Sugar()

	ReadServerEnvironment(cfg)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		cfg.Logger.Fatalf("invalid time zone %q: %v", cfg.Timezone, err)
	}
	cfg.Location = loc

	return cfg
}

func ReadServerEnvironment(cfg *Config) {
	if runAddress := os.Getenv("RUN_ADDRESS"); runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if apiBaseURL := os.Getenv("API_BASE_URL"); apiBaseURL != "" {
		cfg.APIBaseURL = apiBaseURL
	}

	if tokenSecret := os.Getenv("TOKEN_SECRET"); tokenSecret != "" {
		cfg.TokenSecret = tokenSecret
	}

	if timezone := os.Getenv("TIMEZONE"); timezone != "" {
		cfg.Timezone = timezone
	}

	if timeout := os.Getenv("REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
}
