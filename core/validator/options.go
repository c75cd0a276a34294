package validator

import "time"

// Options carry field context into a validator. The zero value is usable:
// every validator falls back to its own label and to the current date.
type Options struct {
	// Label names the field in messages, e.g. "Contact email".
	Label string
	// Today overrides the reference date for date constraints.
	Today time.Time
	// Minimum is a hard lower bound for numeric kinds.
	Minimum *float64
	// Maximum is a hard upper bound for numeric kinds.
	Maximum *float64
	// Date adds constraints to date kinds.
	Date *DateConstraints
	// Limits overrides the length bounds of text kinds. Zero bounds keep
	// the kind's own value.
	Limits *Limits
}

func (o Options) label(fallback string) string {
	if o.Label != "" {
		return o.Label
	}
	return fallback
}

func (o Options) limits(fallback Limits) Limits {
	if o.Limits == nil {
		return fallback
	}
	l := fallback
	if o.Limits.Min > 0 {
		l.Min = o.Limits.Min
	}
	if o.Limits.Max > 0 {
		l.Max = o.Limits.Max
	}
	return l
}

func (o Options) today() time.Time {
	if !o.Today.IsZero() {
		return dateOf(o.Today)
	}
	return dateOf(time.Now())
}

// Float returns a pointer to f, for use in Options.
func Float(f float64) *float64 {
	return &f
}
