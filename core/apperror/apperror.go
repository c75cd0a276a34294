package apperror

import (
	"time"

	"github.com/dmitrymomot/onboarding/core/validator"
)

// Kind classifies an error for presentation and recovery.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindRequired       Kind = "required"
	KindFormat         Kind = "format"
	KindNetwork        Kind = "network"
	KindStorage        Kind = "storage"
	KindAuthentication Kind = "authentication"
	KindPermission     Kind = "permission"
	KindSystem         Kind = "system"
)

// Operation is the storage action that failed.
type Operation string

const (
	OpUpload   Operation = "upload"
	OpDownload Operation = "download"
	OpDelete   Operation = "delete"
)

// Error codes attached by the constructors.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeRequired       = "REQUIRED_FIELD"
	CodeFormat         = "INVALID_FORMAT"
	CodeNetwork        = "NETWORK_ERROR"
	CodeStorage        = "STORAGE_ERROR"
	CodeAuthentication = "SESSION_EXPIRED"
	CodePermission     = "PERMISSION_DENIED"
	CodeSystem         = "SYSTEM_ERROR"
)

// Error is a classified, user-presentable failure. Only the fields relevant
// to its Kind are set.
type Error struct {
	Kind      Kind
	Field     string
	Message   string
	Code      string
	Details   map[string]any
	Timestamp time.Time

	// Validation
	Value      any
	Constraint string

	// Network
	StatusCode int
	Endpoint   string
	Retryable  bool

	// Storage
	Operation Operation
	FileName  string
	FileSize  int64

	cause error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// WithCause attaches the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// WithDetails attaches free-form context.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

func newError(kind Kind, code, field, message string) *Error {
	return &Error{
		Kind:      kind,
		Code:      code,
		Field:     field,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// Validation reports a value that breaks a business rule.
func Validation(field, message string) *Error {
	return newError(KindValidation, CodeValidation, field, message)
}

// Required reports a missing mandatory field.
func Required(field, label string) *Error {
	if label == "" {
		label = field
	}
	return newError(KindRequired, CodeRequired, field, label+" is required")
}

// Malformed reports a value in the wrong shape. Expected describes the shape.
func Malformed(field, message, expected string) *Error {
	e := newError(KindFormat, CodeFormat, field, message)
	e.Constraint = expected
	return e
}

// Network reports a failed remote call.
func Network(message string, statusCode int, endpoint string, retryable bool) *Error {
	e := newError(KindNetwork, CodeNetwork, "", message)
	e.StatusCode = statusCode
	e.Endpoint = endpoint
	e.Retryable = retryable
	return e
}

// Storage reports a failed document operation.
func Storage(op Operation, message, fileName string, fileSize int64) *Error {
	e := newError(KindStorage, CodeStorage, "", message)
	e.Operation = op
	e.FileName = fileName
	e.FileSize = fileSize
	return e
}

// Authentication reports an expired or missing session.
func Authentication(message string) *Error {
	return newError(KindAuthentication, CodeAuthentication, "", message)
}

// Permission reports a forbidden action.
func Permission(message string) *Error {
	return newError(KindPermission, CodePermission, "", message)
}

// System reports an unexpected failure.
func System(message string, cause error) *Error {
	return newError(KindSystem, CodeSystem, "", message).WithCause(cause)
}

// FromResult converts a failed validator result into an Error for field.
// It returns nil for a passing result.
func FromResult(field string, res validator.Result) *Error {
	if res.Valid {
		return nil
	}
	return fromCode(field, res.Message, res.Code)
}

// FromValidation converts a collected field failure into an Error.
func FromValidation(ve validator.ValidationError) *Error {
	return fromCode(ve.Field, ve.Message, ve.Code)
}

// FromValidationErrors converts every collected failure, preserving order.
func FromValidationErrors(errs validator.ValidationErrors) []*Error {
	out := make([]*Error, 0, len(errs))
	for _, ve := range errs {
		out = append(out, FromValidation(ve))
	}
	return out
}

func fromCode(field, message string, code validator.Code) *Error {
	var e *Error
	switch code {
	case validator.CodeRequired, validator.CodeEmpty:
		e = newError(KindRequired, CodeRequired, field, message)
	case validator.CodeFormat, validator.CodeHTML, validator.CodeDecimals:
		e = Malformed(field, message, "")
	default:
		e = newError(KindValidation, CodeValidation, field, message)
	}
	e.Constraint = string(code)
	return e
}
