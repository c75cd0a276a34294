package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/config"
	"github.com/dmitrymomot/onboarding/core/validator"
)

type cachedConfig struct {
	Bucket string `env:"DFSA_TEST_CACHED_BUCKET" envDefault:"documents"`
}

type requiredConfig struct {
	Secret string `env:"DFSA_TEST_REQUIRED_SECRET,required"`
}

type defaultsConfig struct {
	Region  string `env:"DFSA_TEST_DEFAULTS_REGION" envDefault:"me-central-1"`
	Retries int    `env:"DFSA_TEST_DEFAULTS_RETRIES" envDefault:"3"`
}

type invalidConfig struct {
	Retries int    `env:"DFSA_TEST_INVALID_RETRIES" envDefault:"-1" validate:"min:1"`
	Bucket  string `env:"DFSA_TEST_INVALID_BUCKET" envDefault:"docs" validate:"required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg defaultsConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "me-central-1", cfg.Region)
		assert.Equal(t, 3, cfg.Retries)
	})

	t.Run("cached per type", func(t *testing.T) {
		t.Setenv("DFSA_TEST_CACHED_BUCKET", "first")
		var a cachedConfig
		require.NoError(t, config.Load(&a))

		t.Setenv("DFSA_TEST_CACHED_BUCKET", "second")
		var b cachedConfig
		require.NoError(t, config.Load(&b))

		assert.Equal(t, "first", a.Bucket)
		assert.Equal(t, a, b)
	})

	t.Run("missing required variable", func(t *testing.T) {
		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsing)
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("fails validate tags", func(t *testing.T) {
		var cfg invalidConfig
		err := config.Load(&cfg)
		require.ErrorIs(t, err, config.ErrInvalid)
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "Retries", errs[0].Field)

		// Invalid values are not cached.
		t.Setenv("DFSA_TEST_INVALID_RETRIES", "2")
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 2, cfg.Retries)
	})
}
