package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/onboarding/core/validator"
)

// ErrParsing is returned when environment variables cannot be parsed into
// the target struct.
var ErrParsing = errors.New("config: failed to parse environment")

// ErrInvalid is returned when parsed values break the struct's validate
// tags.
var ErrInvalid = errors.New("config: invalid configuration")

var (
	dotenvOnce sync.Once

	cacheMu sync.RWMutex
	cache   = make(map[reflect.Type]any)
)

// Load fills cfg from the environment. The first call for a type parses
// the environment; later calls for the same type copy the cached value.
// Values are checked against validate tags before they are cached.
// A .env file in the working directory is loaded once, if present,
// without overriding variables that are already set.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()

	cacheMu.RLock()
	cached, ok := cache[typ]
	cacheMu.RUnlock()
	if ok {
		*cfg = cached.(T)
		return nil
	}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrParsing, err)
	}
	if err := validator.ValidateStruct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cache[typ] = *cfg
	return nil
}

// MustLoad is like Load but panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
