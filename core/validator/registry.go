package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownKind is returned when a field names a validator kind that was never registered.
var ErrUnknownKind = errors.New("validator: unknown kind")

// KindFunc validates a value with field context.
type KindFunc func(value any, opts Options) Result

// Validator kinds. A kind names the semantic rule set for a field,
// independent of how the field is rendered.
const (
	KindText                = "text"
	KindTextarea            = "textarea"
	KindTextareaLarge       = "textarea-large"
	KindFreeText            = "free-text"
	KindFirstName           = "first-name"
	KindLastName            = "last-name"
	KindFullName            = "full-name"
	KindEmail               = "email"
	KindPhone               = "phone"
	KindURL                 = "url"
	KindAddress             = "address"
	KindCity                = "city"
	KindState               = "state"
	KindPostalCode          = "postal-code"
	KindPassport            = "passport"
	KindCountryCode         = "country-code"
	KindDate                = "date"
	KindDateOfBirth         = "date-of-birth"
	KindRegistrationDate    = "registration-date"
	KindFinancialYearEnd    = "financial-year-end"
	KindPercentage          = "percentage"
	KindCurrency            = "currency"
	KindDecimal             = "decimal"
	KindWholeNumber         = "whole-number"
	KindBoolean             = "boolean"
	KindDeclaration         = "declaration"
	KindDocument            = "document"
	KindFirmName            = "firm-name"
	KindTradingName         = "trading-name"
	KindRegistrationNumber  = "registration-number"
	KindApplicationRef      = "application-ref"
	KindITComplexity        = "it-complexity"
	KindITReliance          = "it-reliance"
	KindBusinessPlanSummary = "business-plan-summary"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]KindFunc{
		// Text
		KindText:          singleLineRule.check,
		KindTextarea:      multiLineSmallRule.check,
		KindTextareaLarge: multiLineLargeRule.check,
		KindFreeText:      freeTextRule.check,
		KindFirstName:     firstNameRule.check,
		KindLastName:      lastNameRule.check,
		KindFullName:      fullNameRule.check,
		KindEmail:         email,
		KindPhone:         phone,
		KindURL:           websiteURL,
		KindAddress:       addressRule.check,
		KindCity:          cityRule.check,
		KindState:         stateRule.check,
		KindPostalCode:    postalCodeRule.check,
		KindPassport:      passportRule.check,
		KindCountryCode:   countryCode,

		// Dates
		KindDate:             date,
		KindDateOfBirth:      withDateDefaults("Date of birth", DateConstraints{NotFuture: true, MinAge: 18, MaxAge: 100}),
		KindRegistrationDate: withDateDefaults("Registration date", DateConstraints{NotFuture: true, MinDate: earliestRegistrationDate}),
		KindFinancialYearEnd: withDateDefaults("Financial year end", DateConstraints{}),

		// Numbers
		KindPercentage:  percentage,
		KindCurrency:    currency,
		KindDecimal:     decimal,
		KindWholeNumber: wholeNumber,

		// Choices and attachments
		KindBoolean:     boolean,
		KindDeclaration: declaration,
		KindDocument:    documentRef,

		// DFSA
		KindFirmName:            firmNameRule.check,
		KindTradingName:         tradingNameRule.check,
		KindRegistrationNumber:  registrationNumberRule.check,
		KindApplicationRef:      applicationRef,
		KindITComplexity:        levelKind("IT complexity"),
		KindITReliance:          levelKind("IT reliance"),
		KindBusinessPlanSummary: businessPlanSummaryRule.check,
	}

	// fieldKinds maps well-known DFSA field names to their rule sets.
	// They win over the generic rule implied by a field's type.
	fieldKinds = map[string]string{
		"firmName":            KindFirmName,
		"legalEntityName":     KindFirmName,
		"tradingName":         KindTradingName,
		"registrationNumber":  KindRegistrationNumber,
		"applicationRef":      KindApplicationRef,
		"dateOfBirth":         KindDateOfBirth,
		"registrationDate":    KindRegistrationDate,
		"financialYearEnd":    KindFinancialYearEnd,
		"itComplexity":        KindITComplexity,
		"itReliance":          KindITReliance,
		"businessPlanSummary": KindBusinessPlanSummary,
		"countryCode":         KindCountryCode,
	}
)

func withDateDefaults(label string, c DateConstraints) KindFunc {
	return func(value any, opts Options) Result {
		if opts.Label == "" {
			opts.Label = label
		}
		if opts.Date == nil {
			opts.Date = &c
		}
		return date(value, opts)
	}
}

func levelKind(label string) KindFunc {
	return func(value any, opts Options) Result {
		if opts.Label == "" {
			opts.Label = label
		}
		return oneOf(value, ITLevels, opts)
	}
}

// Register adds or replaces a validator kind.
func Register(kind string, fn KindFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[kind] = fn
}

// Lookup returns the validator registered for kind.
func Lookup(kind string) (KindFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[kind]
	return fn, ok
}

// KindForField returns the DFSA rule set bound to a field name, if any.
// Only the last segment of a dotted path is considered.
func KindForField(path string) (string, bool) {
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[i+1:]
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	kind, ok := fieldKinds[path]
	return kind, ok
}

// Validate runs the validator registered for kind.
func Validate(kind string, value any, opts Options) (Result, error) {
	fn, ok := Lookup(kind)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return fn(value, opts), nil
}
