package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/validator"
)

func TestDateOfBirthAgeBoundary(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		dob     time.Time
		valid   bool
		message string
	}{
		{"exactly eighteen today", now.AddDate(-18, 0, 0), true, ""},
		{"eighteen yesterday", now.AddDate(-18, 0, -1), true, ""},
		{"eighteen tomorrow", now.AddDate(-18, 0, 1), false, "Age must be at least 18 years"},
		{"over one hundred", now.AddDate(-101, 0, 0), false, "Age must not exceed 100 years"},
		{"future", now.AddDate(0, 0, 1), false, "Date of birth cannot be in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := validator.DateOfBirth(tt.dob.Format(validator.DateLayout))
			assert.Equal(t, tt.valid, res.Valid, res.Message)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestDateConstraints(t *testing.T) {
	t.Parallel()

	today := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   any
		c       validator.DateConstraints
		valid   bool
		message string
	}{
		{"malformed", "15/06/2025", validator.DateConstraints{}, false, "Date must be a valid date (YYYY-MM-DD)"},
		{"impossible calendar date", "2025-02-30", validator.DateConstraints{}, false, "Date must be a valid date (YYYY-MM-DD)"},
		{"timestamp suffix accepted", "2025-06-15T10:00:00Z", validator.DateConstraints{NotFuture: true}, true, ""},
		{"today is not future", "2025-06-15", validator.DateConstraints{NotFuture: true}, true, ""},
		{"tomorrow is future", "2025-06-16", validator.DateConstraints{NotFuture: true}, false, "Date cannot be in the future"},
		{"yesterday is past", "2025-06-14", validator.DateConstraints{NotPast: true}, false, "Date cannot be in the past"},
		{
			"before min date", "1899-12-31",
			validator.DateConstraints{MinDate: time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
			false, "Date must be on or after 1900-01-01",
		},
		{
			"after max date", "2026-01-01",
			validator.DateConstraints{MaxDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
			false, "Date must be on or before 2025-12-31",
		},
		{"time value", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), validator.DateConstraints{MinAge: 18}, true, ""},
		{"missing", nil, validator.DateConstraints{}, false, "Date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := tt.c
			res, err := validator.Validate(validator.KindDate, tt.value, validator.Options{Today: today, Date: &c})
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid, res.Message)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestAge(t *testing.T) {
	t.Parallel()

	birth := time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 17, validator.Age(birth, time.Date(2018, time.February, 28, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 18, validator.Age(birth, time.Date(2018, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 25, validator.Age(birth, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)))
}

func TestDateRange(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.DateRange("2024-01-01", "2024-12-31", "Start date", "End date").Valid)
	assert.True(t, validator.DateRange("2024-01-01", "2024-01-01", "Start date", "End date").Valid)

	res := validator.DateRange("2024-12-31", "2024-01-01", "Start date", "End date")
	assert.False(t, res.Valid)
	assert.Equal(t, "End date must be on or after Start date", res.Message)

	res = validator.DateRange("soon", "2024-01-01", "Start date", "End date")
	assert.Equal(t, "Start date must be a valid date (YYYY-MM-DD)", res.Message)
}

func TestRegistrationDate(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.RegistrationDate("1995-03-10").Valid)
	assert.False(t, validator.RegistrationDate("1850-01-01").Valid)
	assert.False(t, validator.RegistrationDate(time.Now().AddDate(1, 0, 0).Format(validator.DateLayout)).Valid)
	assert.True(t, validator.FinancialYearEnd("2025-12-31").Valid)
	assert.False(t, validator.FinancialYearEnd("31 Dec").Valid)
}
