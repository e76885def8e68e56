package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/subhdotsol/CEX-superdevs/pkg/redis"
)

// Config represents the application configuration.
type Config struct {
	App       AppConfig       `envPrefix:"APP_"`
	Book      BookConfig      `envPrefix:"BOOK_"`
	Broadcast BroadcastConfig `envPrefix:"BROADCAST_"`
	Redis     redis.Config    `envPrefix:"REDIS_"`
	Kafka     KafkaConfig     `envPrefix:"KAFKA_"`
}

// AppConfig represents the HTTP process configuration.
type AppConfig struct {
	Name        string `env:"NAME" envDefault:"orderbook"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Host        string `env:"HOST" envDefault:"127.0.0.1"`
	Port        int    `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

// BookConfig represents the order book configuration.
type BookConfig struct {
	// Pair is the single instrument this book serves, e.g. BTC/USD.
	Pair string `env:"PAIR" envDefault:"BTC/USD"`
}

// BroadcastConfig represents the depth fan-out configuration.
type BroadcastConfig struct {
	// SubscriberBuffer is the per-subscriber queue capacity. When a
	// subscriber falls this many updates behind, the oldest queued
	// update is dropped.
	SubscriberBuffer int `env:"SUBSCRIBER_BUFFER" envDefault:"100"`
}

// KafkaConfig represents the depth publisher Kafka configuration.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:"," envDefault:""`
	Topic   string   `env:"TOPIC" envDefault:"depth"`
}

// Enabled reports whether Kafka brokers have been configured.
func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0 && c.Brokers[0] != ""
}

// Load loads the configuration from environment variables and .env file.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}
