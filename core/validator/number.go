package validator

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/onboarding/core/sanitizer"
)

var amountPrinter = message.NewPrinter(language.English)

// Number extracts a numeric value together with its canonical decimal text,
// which decimal-place rules match against. Strings are accepted when they
// hold a plain decimal number.
func Number(value any) (float64, string, bool) {
	if value == nil {
		return 0, "", false
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, "", false
		}
		return f, strconv.FormatFloat(f, 'f', -1, 64), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		return float64(i), strconv.FormatInt(i, 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		return float64(u), strconv.FormatUint(u, 10), true
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, "", false
		}
		return f, strings.TrimPrefix(s, "+"), true
	}
	return 0, "", false
}

// FormatAmount renders a money amount with thousands grouping, e.g. "$50,000".
func FormatAmount(v float64) string {
	if v == math.Trunc(v) {
		return amountPrinter.Sprintf("$%d", int64(v))
	}
	return amountPrinter.Sprintf("$%.2f", v)
}

func formatPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Percentage validates a value between 0 and 100 with at most two decimals.
func Percentage(value any) Result { return percentage(value, Options{}) }

func percentage(value any, opts Options) Result {
	label := opts.label("Percentage")

	if IsAbsent(value) {
		return Fail(CodeRequired, label+" is required")
	}
	f, text, res := numeric(value, label)
	if !res.Valid {
		return res
	}
	if negative(f, text) || f > 100 {
		return Fail(CodeRange, label+" must be between 0 and 100")
	}
	if !percentagePattern.MatchString(text) {
		return Fail(CodeDecimals, label+" can have at most 2 decimal places")
	}
	if opts.Minimum != nil && f < *opts.Minimum {
		if *opts.Minimum > 0 && *opts.Minimum <= 0.01 {
			return Fail(CodeRange, label+" must be greater than 0%")
		}
		return Fail(CodeRange, fmt.Sprintf("%s must be at least %s%%", label, formatPlain(*opts.Minimum)))
	}
	if opts.Maximum != nil && f > *opts.Maximum {
		return Fail(CodeRange, fmt.Sprintf("%s cannot exceed %s%%", label, formatPlain(*opts.Maximum)))
	}
	return OK()
}

// Currency validates a non-negative amount with at most two decimals and,
// when minimum is non-nil, enforces it as a hard lower bound.
func Currency(value any, label string, minimum *float64) Result {
	return currency(value, Options{Label: label, Minimum: minimum})
}

func currency(value any, opts Options) Result {
	label := opts.label("Amount")

	if IsAbsent(value) {
		return Fail(CodeRequired, label+" is required")
	}
	f, text, res := numeric(value, label)
	if !res.Valid {
		return res
	}
	if negative(f, text) {
		return Fail(CodeRange, label+" cannot be negative")
	}
	if !twoDecimalPattern.MatchString(text) {
		return Fail(CodeDecimals, label+" can have at most 2 decimal places")
	}
	if opts.Minimum != nil && f < *opts.Minimum {
		return Fail(CodeRange, fmt.Sprintf("%s must be at least %s", label, FormatAmount(*opts.Minimum)))
	}
	if opts.Maximum != nil && f > *opts.Maximum {
		return Fail(CodeRange, fmt.Sprintf("%s cannot exceed %s", label, FormatAmount(*opts.Maximum)))
	}
	return OK()
}

// Decimal validates any finite number within the optional bounds.
func Decimal(value any) Result { return decimal(value, Options{}) }

func decimal(value any, opts Options) Result {
	label := opts.label("Value")

	if IsAbsent(value) {
		return Fail(CodeRequired, label+" is required")
	}
	f, _, res := numeric(value, label)
	if !res.Valid {
		return res
	}
	return checkBounds(f, label, opts)
}

// WholeNumber validates a non-negative integer within the optional bounds.
func WholeNumber(value any) Result { return wholeNumber(value, Options{}) }

func wholeNumber(value any, opts Options) Result {
	label := opts.label("Value")

	if IsAbsent(value) {
		return Fail(CodeRequired, label+" is required")
	}
	f, text, res := numeric(value, label)
	if !res.Valid {
		return res
	}
	if negative(f, text) {
		return Fail(CodeRange, label+" cannot be negative")
	}
	if !wholeNumberPattern.MatchString(text) {
		return Fail(CodeFormat, label+" must be a whole number")
	}
	return checkBounds(f, label, opts)
}

// numeric parses a value for the number validators. String input is
// screened for HTML before parsing.
func numeric(value any, label string) (float64, string, Result) {
	if s, ok := asString(value); ok && sanitizer.ContainsHTML(s) {
		return 0, "", Fail(CodeHTML, HTMLMessage)
	}
	f, text, ok := Number(value)
	if !ok {
		return 0, "", Fail(CodeFormat, label+" must be a valid number")
	}
	return f, text, OK()
}

// negative also catches "-0", which parses to zero.
func negative(f float64, text string) bool {
	return f < 0 || strings.HasPrefix(text, "-")
}

func checkBounds(f float64, label string, opts Options) Result {
	if opts.Minimum != nil && f < *opts.Minimum {
		return Fail(CodeRange, fmt.Sprintf("%s must be at least %s", label, formatPlain(*opts.Minimum)))
	}
	if opts.Maximum != nil && f > *opts.Maximum {
		return Fail(CodeRange, fmt.Sprintf("%s cannot exceed %s", label, formatPlain(*opts.Maximum)))
	}
	return OK()
}
