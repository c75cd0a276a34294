package schema

import "errors"

// Schema construction errors. They indicate a programming mistake in a form
// definition, never bad applicant input.
var (
	ErrDuplicateField   = errors.New("schema: duplicate field name")
	ErrInvalidFieldType = errors.New("schema: invalid field type")
	ErrMalformedField   = errors.New("schema: malformed field")
	ErrUnknownKind      = errors.New("schema: unknown validator kind")
)
