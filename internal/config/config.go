// Package config reads the runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/goals-wallet/backend/internal/scheduler"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

var backends = []string{BackendSQLite, BackendMongo, BackendMemory}

type Config struct {
	APIURL    string
	GinMode   string
	LogFormat string
	Port      string

	StoreBackend string
	SQLitePath   string
	MongoURI     string
	MongoDB      string

	// Goal completions are only logged when AMQPURL is empty
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	ArchiveSchedule string

	CORSAllowOrigins []string
	EnablePprof      bool
}

// Load reads an optional .env file and the environment. The result is not validated.
func Load(files ...string) Config {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	return Config{
		APIURL:    os.Getenv("API_URL"),
		GinMode:   getEnv("GIN_MODE", "release"),
		LogFormat: os.Getenv("LOG_FORMAT"),
		Port:      getEnv("PORT", "8080"),

		StoreBackend: getEnv("STORE_BACKEND", BackendSQLite),
		SQLitePath:   getEnv("SQLITE_PATH", "data/budget.db"),
		MongoURI:     os.Getenv("MONGODB_URI"),
		MongoDB:      getEnv("MONGODB_DB", "goals_wallet"),

		AMQPURL:        os.Getenv("AMQP_URL"),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "goals-wallet"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "goal.completed"),

		ArchiveSchedule: getEnv("ARCHIVE_SCHEDULE", scheduler.Off),

		CORSAllowOrigins: strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		EnablePprof:      getEnvBool("ENABLE_PPROF"),
	}
}

// BaseURL parses API_URL. Trailing slashes are removed.
func (c Config) BaseURL() (*url.URL, error) {
	if c.APIURL == "" {
		return nil, errors.New("environment variable API_URL must be set")
	}

	u, err := url.Parse(strings.TrimRight(c.APIURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("environment variable API_URL must be a valid URL: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("environment variable API_URL must use http or https, not %q", u.Scheme)
	}
	return u, nil
}

// Validate returns all configuration problems at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := c.BaseURL(); err != nil {
		errs = append(errs, err)
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q: must be a number between 1 and 65535", c.Port))
	}

	if !slices.Contains(backends, c.StoreBackend) {
		errs = append(errs, fmt.Errorf("invalid store backend %q: must be one of %v", c.StoreBackend, backends))
	}

	if c.StoreBackend == BackendSQLite && c.SQLitePath == "" {
		errs = append(errs, errors.New("SQLITE_PATH must not be empty when using the sqlite backend"))
	}

	if c.StoreBackend == BackendMongo && c.MongoURI == "" {
		errs = append(errs, errors.New("MONGODB_URI must be set when using the mongo backend"))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Errorf("invalid AMQP URL: %w", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			errs = append(errs, fmt.Errorf("invalid AMQP URL scheme %q: must be amqp or amqps", u.Scheme))
		}

		if c.AMQPExchange == "" {
			errs = append(errs, errors.New("AMQP_EXCHANGE must not be empty when AMQP_URL is set"))
		}
	}

	if err := scheduler.Validate(c.ArchiveSchedule); err != nil {
		errs = append(errs, fmt.Errorf("invalid ARCHIVE_SCHEDULE %q: %w", c.ArchiveSchedule, err))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}
