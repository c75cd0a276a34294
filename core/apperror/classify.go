package apperror

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/onboarding/core/storage"
	"github.com/dmitrymomot/onboarding/core/validator"
)

// Classify maps an arbitrary error onto the taxonomy. Errors that already
// are *Error pass through unchanged. Others are classified by type first,
// then by message content, and default to a system error. op describes what
// was being attempted and is kept in Details.
func Classify(err error, op string) *Error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		e := FromValidation(ve[0])
		e.cause = err
		return withOp(e, op)
	}

	if e := fromStorage(err, op); e != nil {
		return withOp(e, op)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return withOp(Network("The request timed out.", 0, "", true).WithCause(err), op)
	}
	if errors.Is(err, context.Canceled) {
		return withOp(System("The operation was cancelled.", err), op)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case containsAny(msg, "network", "fetch", "connection refused", "timeout"):
		return withOp(Network(err.Error(), 0, "", true).WithCause(err), op)
	case containsAny(msg, "unauthorized", "unauthenticated", "token", "auth"):
		return withOp(Authentication(err.Error()).WithCause(err), op)
	case containsAny(msg, "permission", "forbidden", "access denied"):
		return withOp(Permission(err.Error()).WithCause(err), op)
	}
	return withOp(System(err.Error(), err), op)
}

func fromStorage(err error, op string) *Error {
	switch {
	case errors.Is(err, storage.ErrAccessDenied):
		return Permission(err.Error()).WithCause(err)
	case errors.Is(err, storage.ErrOperationTimeout),
		errors.Is(err, storage.ErrRequestTimeout),
		errors.Is(err, storage.ErrServiceUnavailable):
		return Network(err.Error(), 0, "", true).WithCause(err)
	case errors.Is(err, storage.ErrFileNotFound),
		errors.Is(err, storage.ErrBucketNotFound),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrEmptyFile),
		errors.Is(err, storage.ErrTypeNotAllowed),
		errors.Is(err, storage.ErrMIMETypeMismatch),
		errors.Is(err, storage.ErrInvalidPath),
		errors.Is(err, storage.ErrInvalidObjectState):
		return Storage(Operation(op), err.Error(), "", 0).WithCause(err)
	}
	return nil
}

func withOp(e *Error, op string) *Error {
	if op == "" {
		return e
	}
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details["operation"] = op
	return e
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
