package onboarding

import (
	"github.com/dmitrymomot/onboarding/core/apperror"
	"github.com/dmitrymomot/onboarding/core/completion"
	"github.com/dmitrymomot/onboarding/core/form"
	"github.com/dmitrymomot/onboarding/core/pathway"
	"github.com/dmitrymomot/onboarding/core/schema"
)

type (
	ActivityType = pathway.ActivityType
	Pathway      = pathway.Pathway
	Schema       = schema.Schema
	Record       = schema.Record
	Result       = form.Result
	Error        = apperror.Error
)

const (
	FinancialServices      = pathway.FinancialServices
	DNFBP                  = pathway.DNFBP
	CryptoToken            = pathway.CryptoToken
	RegisteredAuditor      = pathway.RegisteredAuditor
	CryptoTokenRecognition = pathway.CryptoTokenRecognition
)

// ErrUnknownActivityType is returned for activity tags outside the five
// supported ones.
var ErrUnknownActivityType = pathway.ErrUnknownActivityType

// SelectSchema returns the pathway schema of an activity.
func SelectSchema(activity ActivityType) (*Schema, error) {
	return pathway.Select(activity)
}

// Validate checks a record against a schema and returns every failure at
// once. The error reports a malformed schema, never invalid input.
func Validate(s *Schema, record Record, opts ...form.Option) (Result, error) {
	return form.Validate(s, record, opts...)
}

// ValidateActivity selects the activity's schema and validates record
// against it.
func ValidateActivity(activity ActivityType, record Record, opts ...form.Option) (Result, error) {
	s, err := pathway.Select(activity)
	if err != nil {
		return Result{}, err
	}
	return form.Validate(s, record, opts...)
}

// Score is the percentage of mandatory fields that hold a value.
func Score(s *Schema, data Record) int {
	return completion.Score(s, data)
}

// RequiredDocuments lists the document fields an activity must provide,
// in display order.
func RequiredDocuments(activity ActivityType) ([]string, error) {
	return pathway.RequiredDocuments(activity)
}

// FormatError renders an error as a user-facing sentence. Errors that are
// not already classified go through apperror.Classify first.
func FormatError(err error) string {
	return apperror.Format(apperror.Classify(err, ""))
}
