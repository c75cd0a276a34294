// Package validator implements the atomic field rules of the onboarding forms.
//
// Every validator takes one raw value, as decoded from JSON or YAML, and
// returns a Result. Validators never panic and never return errors for bad
// input: a rejected value is a Result with Valid set to false, a Code
// classifying the failure and a human-readable Message.
//
// # Check Order
//
// Text-bearing validators apply their checks in a fixed order so the first
// message a user sees is always the most relevant one:
//
//  1. absent or non-string input: "<Label> is required"
//  2. any '<' or '>': "Input cannot contain HTML characters (< or >)"
//  3. blank after trimming: "<Label> cannot be empty"
//  4. character length range
//  5. character class for the field type
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/onboarding/core/validator"
//
//	res := validator.Phone("+971 50 123 4567")
//	if !res.Valid {
//		fmt.Println(res.Message)
//	}
//
//	res = validator.Currency(25000, "Proposed capital", validator.Float(50000))
//	// res.Message == "Proposed capital must be at least $50,000"
//
// # Dates
//
// Dates are accepted as YYYY-MM-DD strings or time.Time values. Constraints
// are checked after parsing and each produces its own message:
//
//	validator.Date("2031-01-01", validator.DateConstraints{NotFuture: true})
//	validator.DateOfBirth("2010-05-01") // Age must be at least 18 years
//
// Ages are calendar accurate: a birthday counts only once its day arrives.
//
// # Kinds
//
// Forms refer to validators by kind name. Kinds are kept in a registry that
// can be extended at startup:
//
//	validator.Register("lei", func(v any, opts validator.Options) validator.Result {
//		...
//	})
//
//	res, err := validator.Validate(validator.KindEmail, "ops@acme.ae", validator.Options{Label: "Contact email"})
//
// Well-known DFSA field names such as firmName or applicationRef are bound to
// their DFSA rule sets through KindForField and take precedence over the
// generic rule implied by a field's type.
package validator
