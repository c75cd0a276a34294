package redis

import "time"

// Config holds the Redis connection settings.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0" validate:"required;prefix:redis://,rediss://"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3" validate:"min:1"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	DraftTTL       time.Duration `env:"REDIS_DRAFT_TTL" envDefault:"720h"`
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"dfsa:draft:" validate:"required;max:64"`
}
