package storage

import "errors"

var (
	ErrInvalidConfig    = errors.New("storage: invalid configuration")
	ErrInvalidPath      = errors.New("storage: invalid path")
	ErrNilBody          = errors.New("storage: object has no body")
	ErrFileNotFound     = errors.New("storage: file not found")
	ErrBucketNotFound   = errors.New("storage: bucket not found")
	ErrAccessDenied     = errors.New("storage: access denied")
	ErrPaginatorNil     = errors.New("storage: paginator is nil")
	ErrFileTooLarge     = errors.New("storage: file too large")
	ErrEmptyFile        = errors.New("storage: file is empty")
	ErrTypeNotAllowed   = errors.New("storage: file type not allowed")
	ErrMIMETypeMismatch = errors.New("storage: MIME type does not match extension")

	ErrRequestTimeout     = errors.New("storage: request timeout")
	ErrServiceUnavailable = errors.New("storage: service unavailable")
	ErrInvalidObjectState = errors.New("storage: invalid object state")
	ErrOperationTimeout   = errors.New("storage: operation timeout")
	ErrOperationCanceled  = errors.New("storage: operation canceled")
)
