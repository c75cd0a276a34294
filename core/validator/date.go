package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/onboarding/core/sanitizer"
)

// DateLayout is the only accepted textual date format.
const DateLayout = "2006-01-02"

// DateConstraints are optional rules applied after a date parses.
// Zero fields are ignored.
type DateConstraints struct {
	NotFuture bool
	NotPast   bool
	MinDate   time.Time
	MaxDate   time.Time
	MinAge    int
	MaxAge    int
}

var earliestRegistrationDate = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// ParseDate accepts a time.Time or a string starting with YYYY-MM-DD and
// returns the calendar date at UTC midnight.
func ParseDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return dateOf(v), true
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, false
		}
		return dateOf(*v), true
	}

	s, ok := asString(value)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if !isoDatePattern.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Age returns the number of whole years between birth and on, counting a
// birthday as reached only once its calendar day has arrived.
func Age(birth, on time.Time) int {
	years := on.Year() - birth.Year()
	if on.Month() < birth.Month() || (on.Month() == birth.Month() && on.Day() < birth.Day()) {
		years--
	}
	return years
}

// Date validates a date against the given constraints, relative to today.
func Date(value any, c DateConstraints) Result {
	return date(value, Options{Date: &c})
}

// DateOfBirth requires a past date for someone aged 18 to 100.
func DateOfBirth(value any) Result {
	return date(value, Options{
		Label: "Date of birth",
		Date:  &DateConstraints{NotFuture: true, MinAge: 18, MaxAge: 100},
	})
}

// RegistrationDate requires a date between 1900-01-01 and today.
func RegistrationDate(value any) Result {
	return date(value, Options{
		Label: "Registration date",
		Date:  &DateConstraints{NotFuture: true, MinDate: earliestRegistrationDate},
	})
}

// FinancialYearEnd only checks that the value is a valid date.
func FinancialYearEnd(value any) Result {
	return date(value, Options{Label: "Financial year end"})
}

func date(value any, opts Options) Result {
	label := opts.label("Date")

	if IsAbsent(value) {
		return Fail(CodeRequired, label+" is required")
	}
	if s, ok := asString(value); ok && sanitizer.ContainsHTML(s) {
		return Fail(CodeHTML, HTMLMessage)
	}

	t, ok := ParseDate(value)
	if !ok {
		return Fail(CodeFormat, label+" must be a valid date (YYYY-MM-DD)")
	}
	if opts.Date == nil {
		return OK()
	}

	c := *opts.Date
	today := opts.today()

	if c.NotFuture && t.After(today) {
		return Fail(CodeDate, label+" cannot be in the future")
	}
	if c.NotPast && t.Before(today) {
		return Fail(CodeDate, label+" cannot be in the past")
	}
	if !c.MinDate.IsZero() && t.Before(dateOf(c.MinDate)) {
		return Fail(CodeDate, fmt.Sprintf("%s must be on or after %s", label, c.MinDate.Format(DateLayout)))
	}
	if !c.MaxDate.IsZero() && t.After(dateOf(c.MaxDate)) {
		return Fail(CodeDate, fmt.Sprintf("%s must be on or before %s", label, c.MaxDate.Format(DateLayout)))
	}

	age := Age(t, today)
	if c.MinAge > 0 && age < c.MinAge {
		return Fail(CodeDate, fmt.Sprintf("Age must be at least %d years", c.MinAge))
	}
	if c.MaxAge > 0 && age > c.MaxAge {
		return Fail(CodeDate, fmt.Sprintf("Age must not exceed %d years", c.MaxAge))
	}
	return OK()
}

// DateRange checks that both ends parse and end is not before start.
func DateRange(start, end any, startLabel, endLabel string) Result {
	s, ok := ParseDate(start)
	if !ok {
		return Fail(CodeFormat, startLabel+" must be a valid date (YYYY-MM-DD)")
	}
	e, ok := ParseDate(end)
	if !ok {
		return Fail(CodeFormat, endLabel+" must be a valid date (YYYY-MM-DD)")
	}
	if e.Before(s) {
		return Fail(CodeDate, fmt.Sprintf("%s must be on or after %s", endLabel, startLabel))
	}
	return OK()
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
