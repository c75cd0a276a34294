package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/dmitrymomot/onboarding/core/sanitizer"
)

// textRule is the shared check pipeline for every text-bearing field:
// presence, markup, blank, length, then character class.
type textRule struct {
	label          string
	limits         Limits
	pattern        *regexp.Regexp
	patternMessage string
}

func (r textRule) check(value any, opts Options) Result {
	label := opts.label(r.label)

	s, ok := asString(value)
	if !ok {
		return Fail(CodeRequired, label+" is required")
	}
	if sanitizer.ContainsHTML(s) {
		return Fail(CodeHTML, HTMLMessage)
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return Fail(CodeEmpty, label+" cannot be empty")
	}

	if res := checkLength(s, label, opts.limits(r.limits)); !res.Valid {
		return res
	}

	if r.pattern != nil && !r.pattern.MatchString(s) {
		return Fail(CodeFormat, fmt.Sprintf(r.patternMessage, label))
	}
	return OK()
}

func checkLength(s, label string, l Limits) Result {
	n := sanitizer.RuneLength(s)
	if l.Min > 0 && n < l.Min {
		if l.Min == 1 {
			return Fail(CodeLength, label+" cannot be empty")
		}
		return Fail(CodeLength, fmt.Sprintf("%s must be at least %d characters", label, l.Min))
	}
	if l.Max > 0 && n > l.Max {
		return Fail(CodeLength, fmt.Sprintf("%s must not exceed %d characters", label, l.Max))
	}
	return OK()
}

func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}

const (
	nameMessage         = "%s can only contain letters, spaces, hyphens, and apostrophes"
	invalidCharsMessage = "%s contains invalid characters"
)

var (
	firstNameRule      = textRule{"First name", FirstNameLimits, namePattern, nameMessage}
	lastNameRule       = textRule{"Last name", LastNameLimits, namePattern, nameMessage}
	fullNameRule       = textRule{"Full name", FullNameLimits, namePattern, nameMessage}
	singleLineRule     = textRule{"This field", TextSingleLineLimits, textSingleLinePattern, invalidCharsMessage}
	multiLineSmallRule = textRule{"This field", TextMultiLineSmallLimits, nil, ""}
	multiLineLargeRule = textRule{"This field", TextMultiLineLargeLimits, nil, ""}
	freeTextRule       = textRule{"This field", Limits{}, nil, ""}
	addressRule        = textRule{"Address", AddressLimits, addressPattern, invalidCharsMessage}
	cityRule           = textRule{"City", CityLimits, addressPattern, invalidCharsMessage}
	stateRule          = textRule{"State", StateLimits, addressPattern, invalidCharsMessage}
	postalCodeRule     = textRule{"Postal code", PostalCodeLimits, postalCodePattern, "%s can only contain letters, numbers, spaces, and hyphens"}
	passportRule       = textRule{"Passport number", PassportLimits, alphanumericPattern, "%s can only contain letters and numbers"}
)

// FirstName validates a given name: 1 to 100 letters.
func FirstName(value any) Result { return firstNameRule.check(value, Options{}) }

// LastName validates a family name: 1 to 200 letters.
func LastName(value any) Result { return lastNameRule.check(value, Options{}) }

// FullName validates a person's full name: 1 to 255 letters.
func FullName(value any) Result { return fullNameRule.check(value, Options{}) }

// TextSingleLine validates short free text.
func TextSingleLine(value any) Result { return singleLineRule.check(value, Options{}) }

// TextMultiLineSmall validates a text area of up to 750 characters.
func TextMultiLineSmall(value any) Result { return multiLineSmallRule.check(value, Options{}) }

// TextMultiLineLarge validates a text area of up to 2000 characters.
func TextMultiLineLarge(value any) Result { return multiLineLargeRule.check(value, Options{}) }

// Address validates a street address line.
func Address(value any) Result { return addressRule.check(value, Options{}) }

// City validates a city name.
func City(value any) Result { return cityRule.check(value, Options{}) }

// State validates a state, province or emirate.
func State(value any) Result { return stateRule.check(value, Options{}) }

// PostalCode validates a postal or zip code.
func PostalCode(value any) Result { return postalCodeRule.check(value, Options{}) }

// Passport validates a passport number: 5 to 10 letters and digits.
func Passport(value any) Result { return passportRule.check(value, Options{}) }

// Email validates an email address after trimming and lowercasing.
func Email(value any) Result { return email(value, Options{}) }

func email(value any, opts Options) Result {
	label := opts.label("Email")
	s, ok := asString(value)
	if ok {
		value = strings.ToLower(strings.TrimSpace(s))
	}
	res := textRule{label, EmailLimits, nil, ""}.check(value, opts)
	if !res.Valid {
		return res
	}
	if !emailPattern.MatchString(value.(string)) {
		return Fail(CodeFormat, "Please enter a valid email address")
	}
	return OK()
}

// Phone validates a phone number. Formatting characters are allowed and the
// remaining digits must number between 7 and 15.
func Phone(value any) Result { return phone(value, Options{}) }

func phone(value any, opts Options) Result {
	label := opts.label("Phone number")
	res := textRule{label, Limits{}, phonePattern,
		"%s can only contain digits, spaces, +, -, and parentheses"}.check(value, opts)
	if !res.Valid {
		return res
	}

	s, _ := asString(value)
	digits := len(sanitizer.KeepDigits(sanitizer.StripPhoneFormatting(s)))
	if digits < PhoneDigitLimits.Min {
		return Fail(CodeLength, fmt.Sprintf("%s must contain at least %d digits", label, PhoneDigitLimits.Min))
	}
	if digits > PhoneDigitLimits.Max {
		return Fail(CodeLength, fmt.Sprintf("%s must not exceed %d digits", label, PhoneDigitLimits.Max))
	}
	return OK()
}

// WebsiteURL validates an absolute http or https URL.
func WebsiteURL(value any) Result { return websiteURL(value, Options{}) }

func websiteURL(value any, opts Options) Result {
	label := opts.label("Website")
	res := textRule{label, URLLimits, nil, ""}.check(value, opts)
	if !res.Valid {
		return res
	}

	s, _ := asString(value)
	if !isHTTPURL(strings.TrimSpace(s)) {
		return Fail(CodeFormat, "Please enter a valid URL (starting with http:// or https://)")
	}
	return OK()
}

func isHTTPURL(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
