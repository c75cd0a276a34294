// Package health runs readiness checks against the services an onboarding
// deployment depends on.
//
// A check is any func(context.Context) error, which is the shape returned by
// pg.Healthcheck and redis.Healthcheck:
//
//	report := health.Readiness(ctx, log,
//		health.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	)
//	if !report.Ready() {
//		// at least one dependency is down
//	}
//
// Every check runs, in order, even after a failure, so the report names all
// unavailable dependencies at once.
package health
