// Package config loads the service settings from the environment. In
// production the environment is first filled from AWS SSM Parameter Store,
// elsewhere from a local .env file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	envVarsPrefix = "/farmregistry/prod/"
	awsRegion     = "us-east-2"
)

const (
	DefaultPort            = 7070
	DefaultDBPath          = "database.db"
	DefaultProducersAPIURL = "http://localhost:7070/api/"
	DefaultRefreshInterval = time.Minute
	DefaultLookupTimeout   = 10 * time.Second
)

type Config struct {
	Port            int
	DBPath          string
	ProducersAPIURL string
	MinhaReceitaURL string
	RefreshInterval time.Duration
	LookupTimeout   time.Duration
	LogLevel        log.Lvl
}

// Load exports the environment for the current GO_ENV and reads the
// settings from it. A missing .env file is not an error.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("GO_ENV") == "production" {
		if err := loadProdEnv(ctx); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the settings from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            DefaultPort,
		DBPath:          envOr("DB_PATH", DefaultDBPath),
		ProducersAPIURL: envOr("PRODUCERS_API_URL", DefaultProducersAPIURL),
		MinhaReceitaURL: os.Getenv("MINHA_RECEITA_URL"),
		RefreshInterval: DefaultRefreshInterval,
		LookupTimeout:   DefaultLookupTimeout,
		LogLevel:        log.INFO,
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid PORT %q", raw)
		}
		cfg.Port = port
	}

	var err error
	if cfg.RefreshInterval, err = durationEnv("REFRESH_INTERVAL", DefaultRefreshInterval); err != nil {
		return nil, err
	}
	if cfg.LookupTimeout, err = durationEnv("LOOKUP_TIMEOUT", DefaultLookupTimeout); err != nil {
		return nil, err
	}

	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		lvl, ok := parseLevel(raw)
		if !ok {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q", raw)
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

func (c *Config) Address() string {
	return ":" + strconv.Itoa(c.Port)
}

func loadProdEnv(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(envVarsPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("unable to load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), envVarsPrefix)
			if err = os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return fmt.Errorf("unable to set environment variable %s: %w", key, err)
			}
			loaded++
		}
	}
	log.Debugf("loaded %d prod environment variables", loaded)
	return nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func parseLevel(raw string) (log.Lvl, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "DEBUG":
		return log.DEBUG, true
	case "INFO":
		return log.INFO, true
	case "WARN":
		return log.WARN, true
	case "ERROR":
		return log.ERROR, true
	case "OFF":
		return log.OFF, true
	}
	return 0, false
}
