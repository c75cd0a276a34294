package form

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/onboarding/core/apperror"
	"github.com/dmitrymomot/onboarding/core/schema"
	"github.com/dmitrymomot/onboarding/core/validator"
)

var (
	ErrNilSchema    = errors.New("form: nil schema")
	ErrUnknownField = errors.New("form: unknown field")
)

// Option configures a validation run.
type Option func(*options)

type options struct {
	stage string
	today time.Time
}

// WithStage evaluates stage-conditional requirements for the given company
// stage. Without it, any stage-conditional field is treated as required.
func WithStage(stage string) Option {
	return func(o *options) {
		o.stage = stage
	}
}

// WithToday fixes the reference date used by date rules.
func WithToday(t time.Time) Option {
	return func(o *options) {
		o.today = t
	}
}

// Result is the outcome of validating a whole record.
type Result struct {
	Valid  bool
	Errors map[string]string

	failures validator.ValidationErrors
}

// Err returns the failures as an error, or nil when the record is valid.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return r.failures
}

// Failures returns the classified failures in schema order.
func (r Result) Failures() []*apperror.Error {
	return apperror.FromValidationErrors(r.failures)
}

// Summary renders the failures as a single user-facing paragraph.
func (r Result) Summary() string {
	return apperror.Summary(r.Failures())
}

// Validate checks every field of the schema against the record and reports
// all failures at once, keyed by field path. The error is non-nil only when
// the schema itself is malformed.
func Validate(s *schema.Schema, record schema.Record, opts ...Option) (Result, error) {
	if s == nil {
		return Result{}, ErrNilSchema
	}
	if err := s.Check(); err != nil {
		return Result{}, err
	}

	w := newWalker(record, opts)
	for _, f := range s.Fields() {
		value, _ := schema.Lookup(record, f.Name)
		w.field(f, f.Name, value)
	}
	if w.err != nil {
		return Result{}, w.err
	}
	return w.result(), nil
}

// ValidateField validates the single field at path in the context of the
// whole record and returns its message, or "" when it is valid. Paths may
// point inside composite fields, e.g. "businessAddress.city".
func ValidateField(s *schema.Schema, path string, record schema.Record, opts ...Option) (string, error) {
	if s == nil {
		return "", ErrNilSchema
	}
	if err := s.Check(); err != nil {
		return "", err
	}

	owner, ok := ownerOf(s, path)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, path)
	}

	w := newWalker(record, opts)
	value, _ := schema.Lookup(record, owner.Name)
	w.field(owner, owner.Name, value)
	if w.err != nil {
		return "", w.err
	}
	return w.errs.Get(path), nil
}

// ownerOf finds the top-level field that contains path, preferring the
// longest matching name.
func ownerOf(s *schema.Schema, path string) (schema.FieldDescriptor, bool) {
	var best schema.FieldDescriptor
	found := false
	for _, f := range s.Fields() {
		if !covers(f.Name, path) {
			continue
		}
		if !found || len(f.Name) > len(best.Name) {
			best, found = f, true
		}
	}
	return best, found
}

func covers(name, path string) bool {
	if name == path {
		return true
	}
	if len(path) <= len(name) || path[:len(name)] != name {
		return false
	}
	next := path[len(name)]
	return next == '.' || next == '['
}
