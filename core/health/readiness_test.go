package health_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/health"
)

func TestReadiness(t *testing.T) {
	t.Parallel()

	errDown := errors.New("connection refused")
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errDown }

	t.Run("all checks pass", func(t *testing.T) {
		t.Parallel()
		report := health.Readiness(context.Background(), nil,
			health.Check{Name: "postgres", Fn: ok},
			health.Check{Name: "redis", Fn: ok},
		)
		require.Len(t, report.Checks, 2)
		assert.True(t, report.Ready())
		assert.NoError(t, report.Err())
		assert.Equal(t, "postgres", report.Checks[0].Name)
	})

	t.Run("failure does not stop later checks", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		calls := 0
		report := health.Readiness(context.Background(), log,
			health.Check{Name: "postgres", Fn: down},
			health.Check{Name: "redis", Fn: func(context.Context) error { calls++; return nil }},
		)
		assert.Equal(t, 1, calls)
		assert.False(t, report.Ready())
		assert.False(t, report.Checks[0].OK())
		assert.True(t, report.Checks[1].OK())

		err := report.Err()
		require.Error(t, err)
		assert.ErrorIs(t, err, health.ErrNotReady)
		assert.ErrorIs(t, err, errDown)
		assert.Contains(t, err.Error(), "postgres")
		assert.Contains(t, buf.String(), "Readiness check failed")
	})

	t.Run("no checks is ready", func(t *testing.T) {
		t.Parallel()
		report := health.Readiness(context.Background(), nil)
		assert.True(t, report.Ready())
		assert.Empty(t, report.Checks)
	})
}

func TestLiveness(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ALIVE", health.Liveness())
}
