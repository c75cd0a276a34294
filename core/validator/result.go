package validator

import (
	"errors"
	"strings"
)

// Code classifies why a value was rejected.
type Code string

const (
	CodeRequired Code = "required"
	CodeHTML     Code = "html"
	CodeEmpty    Code = "empty"
	CodeLength   Code = "length"
	CodeFormat   Code = "format"
	CodeRange    Code = "range"
	CodeDecimals Code = "decimals"
	CodeDate     Code = "date"
	CodeInvalid  Code = "invalid"
)

// Result is the outcome of validating a single value.
// Message is empty when Valid is true.
type Result struct {
	Valid   bool
	Message string
	Code    Code
}

// OK returns a passing result.
func OK() Result {
	return Result{Valid: true}
}

// Fail returns a failing result with the given code and message.
func Fail(code Code, message string) Result {
	return Result{Code: code, Message: message}
}

// Func validates one raw value.
type Func func(value any) Result

// Optional wraps fn so that an absent value passes.
func Optional(fn Func) Func {
	return func(value any) Result {
		if IsAbsent(value) {
			return OK()
		}
		return fn(value)
	}
}

// IsAbsent reports whether value carries no data: nil, or a string that is
// empty after trimming.
func IsAbsent(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case *string:
		return v == nil || strings.TrimSpace(*v) == ""
	}
	return false
}

// ValidationError describes a rejected field in a form.
type ValidationError struct {
	Field             string
	Message           string
	Code              Code
	TranslationKey    string
	TranslationValues map[string]any
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors is an ordered list of field failures that implements error.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a failure.
func (e *ValidationErrors) Add(ve ValidationError) {
	*e = append(*e, ve)
}

// IsEmpty reports whether no failures were collected.
func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

// Has reports whether the named field failed.
func (e ValidationErrors) Has(field string) bool {
	for _, ve := range e {
		if ve.Field == field {
			return true
		}
	}
	return false
}

// Get returns the message for the named field, or "".
func (e ValidationErrors) Get(field string) string {
	for _, ve := range e {
		if ve.Field == field {
			return ve.Message
		}
	}
	return ""
}

// Map flattens the failures into field path -> message.
func (e ValidationErrors) Map() map[string]string {
	m := make(map[string]string, len(e))
	for _, ve := range e {
		m[ve.Field] = ve.Message
	}
	return m
}

// IsValidationError reports whether err wraps ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors unwraps ValidationErrors from err, or returns nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
