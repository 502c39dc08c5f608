package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreDriverRest     = "rest"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	Events  EventsConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host      string
	Port      string
	Env       string
	BodyLimit int
}

// StoreConfig describes how the notes store is reached. Credentials are not
// checked here; a missing URL or key shows up as a store error on first use.
type StoreConfig struct {
	Driver      string
	URL         string
	ServiceKey  string
	DatabaseURL string
}

type EventsConfig struct {
	NoteCreatedTopic string
}

type LoggingConfig struct {
	Level string
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Load reads the configuration from the environment after loading the given
// env files. With no files, a missing .env in the working directory is ignored.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	} else {
		godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("HOST", "0.0.0.0"),
			Port:      getEnv("PORT", "3000"),
			Env:       getEnv("ENV", "development"),
			BodyLimit: getEnvAsInt("BODY_LIMIT", 1024*1024),
		},
		Store: StoreConfig{
			Driver:      getEnv("STORE_DRIVER", StoreDriverRest),
			URL:         os.Getenv("SUPABASE_URL"),
			ServiceKey:  os.Getenv("SUPABASE_SERVICE_KEY"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
		Events: EventsConfig{
			NoteCreatedTopic: getEnv("NOTE_EVENTS_TOPIC", "note.created"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case StoreDriverRest, StoreDriverPostgres:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: expected %q or %q", c.Store.Driver, StoreDriverRest, StoreDriverPostgres)
	}

	if c.Server.BodyLimit <= 0 {
		return errors.New("BODY_LIMIT must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
