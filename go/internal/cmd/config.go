package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration. Anything not set here falls
// back to environment variables, then defaults.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	NATS struct {
		URL        string `yaml:"url"`
		StreamName string `yaml:"stream_name"`
	} `yaml:"nats"`

	Outbox struct {
		// Mode selects the publication path: "worker" polls on an
		// interval, "listener" reacts to Postgres NOTIFY.
		Mode         string        `yaml:"mode"`
		PollInterval time.Duration `yaml:"poll_interval"`
	} `yaml:"outbox"`

	Alerts struct {
		DelayThreshold time.Duration `yaml:"delay_threshold"`
	} `yaml:"alerts"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

func defaultConfig() *Config {
	config := &Config{}
	config.Server.Port = getEnv("PORT", "8080")
	config.NATS.URL = getEnv("NATS_URL", "nats://localhost:4222")
	config.NATS.StreamName = "TOURNAMENT_EVENTS"
	config.Outbox.Mode = getEnv("OUTBOX_MODE", "worker")
	config.Outbox.PollInterval = 5 * time.Second
	config.Alerts.DelayThreshold = 45 * time.Minute
	return config
}
