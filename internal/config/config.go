package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the server binary needs to run. Values come from
// a YAML file with environment variable overrides.
type Config struct {
	LogLevel      string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort      string        `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	CollectorAddr string        `yaml:"collector-addr" env:"OTEL_COLLECTOR_ADDR" env-default:"localhost:4317"`
	SQLitePath    string        `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"./replay.db"`
	JWTSecret     string        `yaml:"jwt-secret" env:"JWT_SECRET" env-default:"dev-only-secret"`
	SessionTTL    time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"24h"`
	Redis         Redis         `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads the config file at path, falling back to environment variables
// and defaults when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		// A missing file is fine; env vars and defaults still apply.
		if envErr := cleanenv.ReadEnv(cfg); envErr != nil {
			return nil, fmt.Errorf("unable to load config: %w", err)
		}
	}

	return cfg, nil
}

// MustLoad is Load for main(); it panics on failure.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Addr returns the host:port address of the Redis server.
func (r *Redis) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}
