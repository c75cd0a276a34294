package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/onboarding/core/config"
	"github.com/dmitrymomot/onboarding/core/health"
	"github.com/dmitrymomot/onboarding/integration/database/pg"
	"github.com/dmitrymomot/onboarding/integration/database/redis"
)

// openChecks connects to PostgreSQL and Redis and returns their health
// checks. Tests replace it.
var openChecks = func(ctx context.Context, _ *slog.Logger) ([]health.Check, func(), error) {
	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return nil, nil, err
	}
	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, nil, err
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return nil, nil, err
	}
	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	checks := []health.Check{
		{Name: "postgres", Fn: pg.Healthcheck(pool)},
		{Name: "redis", Fn: redis.Healthcheck(client)},
	}
	return checks, func() {
		_ = client.Close()
		pool.Close()
	}, nil
}

func newHealthCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that PostgreSQL and Redis are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checks, closeFn, err := openChecks(cmd.Context(), o.log)
			if err != nil {
				return err
			}
			defer closeFn()

			report := health.Readiness(cmd.Context(), o.log, checks...)
			t := newTable("Dependency", "Status", "Time")
			for _, s := range report.Checks {
				status := okStyle.Render("ok")
				if !s.OK() {
					status = failStyle.Render(s.Err.Error())
				}
				t.Row(s.Name, status, s.Duration.Round(time.Microsecond).String())
			}
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, t.Render()); err != nil {
				return err
			}
			if !report.Ready() {
				return report.Err()
			}
			_, err = fmt.Fprintln(out, okStyle.Render("READY"))
			return err
		},
	}
}
