package completion

import (
	"github.com/dmitrymomot/onboarding/core/schema"
)

// Score is the share of mandatory fields that hold a value, as a whole
// percentage. Fields mandatory in any stage count. A schema without
// mandatory fields scores 100.
func Score(s *schema.Schema, data schema.Record) int {
	return Evaluate(s, data).Score
}

// ScoreAt is like Score but only counts fields mandatory in the given stage.
func ScoreAt(s *schema.Schema, data schema.Record, stage string) int {
	return Evaluate(s, data, WithStage(stage)).Score
}

// Overall is the share of all unconditional fields that hold a value,
// mandatory or not. A schema without fields scores 0.
func Overall(s *schema.Schema, data schema.Record) int {
	if s == nil {
		return 0
	}
	var total, filled int
	for _, f := range s.Fields() {
		if f.When != nil {
			continue
		}
		total++
		if isFilled(data, f) {
			filled++
		}
	}
	if total == 0 {
		return 0
	}
	return percent(filled, total)
}

// Section scores a single group the way Score scores a schema.
func Section(g schema.GroupDescriptor, data schema.Record) int {
	return tally(g, data, "").score()
}

// Option configures Evaluate.
type Option func(*options)

type options struct {
	stage string
}

// WithStage restricts stage-conditional fields to the given stage.
func WithStage(stage string) Option {
	return func(o *options) {
		o.stage = stage
	}
}

// Report breaks a completion score down by group.
type Report struct {
	Score     int
	Total     int
	Completed int
	// Missing lists the names of empty mandatory fields in schema order.
	Missing  []string
	Sections []SectionReport
}

// SectionReport is the completion of one group.
type SectionReport struct {
	Name      string
	Title     string
	Score     int
	Total     int
	Completed int
}

// Evaluate computes the completion score together with per-group detail.
// Follow-up fields gated by a condition never count, so answering a question
// cannot lower the score.
func Evaluate(s *schema.Schema, data schema.Record, opts ...Option) Report {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := Report{Missing: []string{}}
	if s == nil {
		r.Score = 100
		return r
	}

	for _, g := range s.Groups {
		c := tally(g, data, o.stage)
		r.Total += c.total
		r.Completed += c.completed
		r.Missing = append(r.Missing, c.missing...)
		r.Sections = append(r.Sections, SectionReport{
			Name:      g.Name,
			Title:     g.Title,
			Score:     c.score(),
			Total:     c.total,
			Completed: c.completed,
		})
	}

	r.Score = 100
	if r.Total > 0 {
		r.Score = percent(r.Completed, r.Total)
	}
	return r
}

type counts struct {
	total     int
	completed int
	missing   []string
}

func (c counts) score() int {
	if c.total == 0 {
		return 100
	}
	return percent(c.completed, c.total)
}

func tally(g schema.GroupDescriptor, data schema.Record, stage string) counts {
	var c counts
	for _, f := range g.Fields {
		if f.When != nil || !f.Mandatory.AppliesTo(stage) {
			continue
		}
		c.total++
		if isFilled(data, f) {
			c.completed++
		} else {
			c.missing = append(c.missing, f.Name)
		}
	}
	return c
}

func isFilled(data schema.Record, f schema.FieldDescriptor) bool {
	v, ok := schema.Lookup(data, f.Name)
	return ok && schema.IsFilled(v)
}

// percent rounds completed/total to the nearest whole percent, halves up.
func percent(completed, total int) int {
	return (completed*200 + total) / (2 * total)
}
