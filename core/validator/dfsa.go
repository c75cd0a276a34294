package validator

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/dmitrymomot/onboarding/core/sanitizer"
)

// ITLevels are the accepted answers for IT complexity and reliance questions.
var ITLevels = []string{"Low", "Medium", "High"}

var (
	firmNameRule            = textRule{"Firm name", FirmNameLimits, firmNamePattern, "%s contains invalid characters"}
	tradingNameRule         = textRule{"Trading name", TradingNameLimits, firmNamePattern, "%s contains invalid characters"}
	registrationNumberRule  = textRule{"Registration number", RegistrationNumberLimits, registrationNumberPattern, "%s can only contain letters, numbers, and hyphens"}
	businessPlanSummaryRule = textRule{"Business plan summary", BusinessPlanSummaryLimits, nil, ""}
)

// FirmName validates the legal name of an applicant firm.
func FirmName(value any) Result { return firmNameRule.check(value, Options{}) }

// TradingName validates a trading name.
func TradingName(value any) Result { return tradingNameRule.check(value, Options{}) }

// RegistrationNumber validates a company registration number.
func RegistrationNumber(value any) Result { return registrationNumberRule.check(value, Options{}) }

// BusinessPlanSummary validates the 50 to 2000 character plan summary.
func BusinessPlanSummary(value any) Result { return businessPlanSummaryRule.check(value, Options{}) }

// ApplicationRef validates a reference of the form DFSA-YYYYMM-NNNNN.
// The year must fall between 2020 and next year.
func ApplicationRef(value any) Result { return applicationRef(value, Options{}) }

func applicationRef(value any, opts Options) Result {
	label := opts.label("Application reference")
	res := textRule{label, Limits{Min: 17, Max: 17}, nil, ""}.check(value, opts)
	if !res.Valid {
		if res.Code == CodeLength {
			return Fail(CodeFormat, label+" must be in format DFSA-YYYYMM-XXXXX")
		}
		return res
	}

	s, _ := asString(value)
	m := applicationRefPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Fail(CodeFormat, label+" must be in format DFSA-YYYYMM-XXXXX")
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	maxYear := opts.today().Year() + 1
	if year < 2020 || year > maxYear {
		return Fail(CodeRange, fmt.Sprintf("%s year must be between 2020 and %d", label, maxYear))
	}
	if month < 1 || month > 12 {
		return Fail(CodeRange, label+" month must be between 01 and 12")
	}
	return OK()
}

// ITComplexity accepts Low, Medium or High.
func ITComplexity(value any) Result {
	return oneOf(value, ITLevels, Options{Label: "IT complexity"})
}

// ITReliance accepts Low, Medium or High.
func ITReliance(value any) Result {
	return oneOf(value, ITLevels, Options{Label: "IT reliance"})
}

// OneOf requires value to equal one of the allowed options exactly.
func OneOf(value any, allowed []string, label string) Result {
	return oneOf(value, allowed, Options{Label: label})
}

func oneOf(value any, allowed []string, opts Options) Result {
	label := opts.label("This field")
	if IsAbsent(value) {
		return Fail(CodeRequired, label+" is required")
	}
	s, ok := asString(value)
	if !ok {
		return Fail(CodeInvalid, "Please select a valid "+strings.ToLower(label))
	}
	if sanitizer.ContainsHTML(s) {
		return Fail(CodeHTML, HTMLMessage)
	}
	if !slices.Contains(allowed, s) {
		if len(allowed) <= 3 {
			return Fail(CodeInvalid, fmt.Sprintf("%s must be %s", label, joinOptions(allowed)))
		}
		return Fail(CodeInvalid, "Please select a valid "+strings.ToLower(label))
	}
	return OK()
}

func joinOptions(opts []string) string {
	switch len(opts) {
	case 0:
		return ""
	case 1:
		return opts[0]
	case 2:
		return opts[0] + " or " + opts[1]
	}
	return strings.Join(opts[:len(opts)-1], ", ") + ", or " + opts[len(opts)-1]
}

// CountryCode validates a two-letter country code.
func CountryCode(value any) Result { return countryCode(value, Options{}) }

func countryCode(value any, opts Options) Result {
	label := opts.label("Country")
	res := textRule{label, Limits{Min: 2, Max: 2}, countryCodePattern, "%s must be a 2-letter country code"}.check(value, opts)
	if !res.Valid && res.Code == CodeLength {
		return Fail(CodeFormat, label+" must be a 2-letter country code")
	}
	return res
}

// Declaration requires an explicit true.
func Declaration(value any) Result { return declaration(value, Options{}) }

func declaration(value any, opts Options) Result {
	label := opts.label("Declaration")
	if b, ok := value.(bool); ok && b {
		return OK()
	}
	return Fail(CodeRequired, label+" must be confirmed")
}

// Boolean requires an answer of true or false.
func Boolean(value any) Result { return boolean(value, Options{}) }

func boolean(value any, opts Options) Result {
	if _, ok := value.(bool); ok {
		return OK()
	}
	return Fail(CodeRequired, opts.label("This field")+" is required")
}

// RequiredArray requires a list with at least minimum items.
func RequiredArray(value any, minimum int, label string) Result {
	n, ok := Len(value)
	if !ok || n == 0 {
		return Fail(CodeRequired, label+" is required")
	}
	if n < minimum {
		return Fail(CodeLength, fmt.Sprintf("%s must have at least %d item(s)", label, minimum))
	}
	return OK()
}

// Len returns the length of a slice or array value.
func Len(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}

// DocumentRef validates a link to an uploaded document.
func DocumentRef(value any) Result { return documentRef(value, Options{}) }

func documentRef(value any, opts Options) Result {
	label := opts.label("Document")
	res := textRule{label, Limits{Max: URLLimits.Max}, nil, ""}.check(value, opts)
	if !res.Valid {
		return res
	}
	s, _ := asString(value)
	if !isHTTPURL(strings.TrimSpace(s)) {
		return Fail(CodeFormat, label+" must be a valid document link")
	}
	return OK()
}
