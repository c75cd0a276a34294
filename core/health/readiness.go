package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/onboarding/core/logger"
)

// ErrNotReady is returned by Report.Err when any check failed.
var ErrNotReady = errors.New("service not ready")

// Check is a named dependency check.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// Status is the outcome of one check.
type Status struct {
	Name     string
	Err      error
	Duration time.Duration
}

// OK reports whether the check passed.
func (s Status) OK() bool { return s.Err == nil }

// Report collects check outcomes in the order they ran.
type Report struct {
	Checks []Status
}

// Ready reports whether every check passed. An empty report is ready.
func (r Report) Ready() bool {
	for _, s := range r.Checks {
		if !s.OK() {
			return false
		}
	}
	return true
}

// Err joins the failures under ErrNotReady, or returns nil when ready.
func (r Report) Err() error {
	var errs []error
	for _, s := range r.Checks {
		if !s.OK() {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, s.Err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrNotReady}, errs...)...)
}

// Liveness always reports "ALIVE"; it performs no dependency checks.
func Liveness() string { return "ALIVE" }

// Readiness runs every check and logs the failing ones.
func Readiness(ctx context.Context, log *slog.Logger, checks ...Check) Report {
	report := Report{Checks: make([]Status, 0, len(checks))}
	for _, c := range checks {
		start := time.Now()
		err := c.Fn(ctx)
		s := Status{Name: c.Name, Err: err, Duration: time.Since(start)}
		if err != nil && log != nil {
			log.ErrorContext(ctx, "Readiness check failed",
				logger.Component(c.Name),
				logger.Duration(s.Duration),
				logger.Error(err))
		}
		report.Checks = append(report.Checks, s)
	}
	return report
}
