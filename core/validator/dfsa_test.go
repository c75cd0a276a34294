package validator_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/onboarding/core/validator"
)

func TestApplicationRef(t *testing.T) {
	t.Parallel()

	nextYear := time.Now().Year() + 1

	tests := []struct {
		name  string
		value string
		valid bool
	}{
		{"valid", "DFSA-202403-00017", true},
		{"next year", fmt.Sprintf("DFSA-%d01-00001", nextYear), true},
		{"year too early", "DFSA-201912-00001", false},
		{"year too late", fmt.Sprintf("DFSA-%d01-00001", nextYear+1), false},
		{"month thirteen", "DFSA-202413-00001", false},
		{"month zero", "DFSA-202400-00001", false},
		{"wrong prefix", "DIFC-202403-00017", false},
		{"short", "DFSA-2024-1", false},
		{"lowercase", "dfsa-202403-00017", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := validator.ApplicationRef(tt.value)
			assert.Equal(t, tt.valid, res.Valid, res.Message)
		})
	}
}

func TestFirmAndTradingName(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.FirmName("Acme Capital (DIFC) Ltd.").Valid)
	assert.True(t, validator.FirmName("Société Générale").Valid)
	assert.False(t, validator.FirmName("A").Valid)
	assert.False(t, validator.FirmName("Acme * Stars").Valid)
	assert.True(t, validator.TradingName("Acme").Valid)
	assert.False(t, validator.TradingName(strings.Repeat("a", 101)).Valid)
}

func TestRegistrationNumber(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.RegistrationNumber("CL-1234").Valid)
	assert.False(t, validator.RegistrationNumber("CL 1234").Valid)
	assert.False(t, validator.RegistrationNumber(strings.Repeat("1", 51)).Valid)
}

func TestITLevels(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.ITComplexity("Medium").Valid)
	assert.True(t, validator.ITReliance("High").Valid)

	res := validator.ITComplexity("medium")
	assert.False(t, res.Valid)
	assert.Equal(t, "IT complexity must be Low, Medium, or High", res.Message)
}

func TestBusinessPlanSummary(t *testing.T) {
	t.Parallel()

	assert.False(t, validator.BusinessPlanSummary(strings.Repeat("a", 49)).Valid)
	assert.True(t, validator.BusinessPlanSummary(strings.Repeat("a", 50)).Valid)
	assert.False(t, validator.BusinessPlanSummary(strings.Repeat("a", 2001)).Valid)
}

func TestCountryCode(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.CountryCode("AE").Valid)
	res := validator.CountryCode("ARE")
	assert.False(t, res.Valid)
	assert.Equal(t, "Country must be a 2-letter country code", res.Message)
	assert.False(t, validator.CountryCode("A1").Valid)
}

func TestDeclarationAndBoolean(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Declaration(true).Valid)
	assert.False(t, validator.Declaration(false).Valid)
	assert.False(t, validator.Declaration("true").Valid)
	assert.Equal(t, "Declaration must be confirmed", validator.Declaration(nil).Message)

	assert.True(t, validator.Boolean(false).Valid)
	assert.False(t, validator.Boolean(nil).Valid)
}

func TestRequiredArray(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.RequiredArray([]any{"a"}, 1, "Key individuals").Valid)
	assert.Equal(t, "Key individuals is required", validator.RequiredArray([]any{}, 1, "Key individuals").Message)
	assert.Equal(t, "Funding sources must have at least 2 item(s)", validator.RequiredArray([]string{"x"}, 2, "Funding sources").Message)
	assert.False(t, validator.RequiredArray("x", 1, "Key individuals").Valid)
}

func TestDocumentRef(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.DocumentRef("https://files.example.com/accounts/1/business-plan.pdf").Valid)

	res := validator.DocumentRef("business-plan.pdf")
	assert.False(t, res.Valid)
	assert.Equal(t, "Document must be a valid document link", res.Message)

	assert.Equal(t, validator.CodeRequired, validator.DocumentRef(nil).Code)
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	allowed := []string{"equity", "debt", "retained_earnings", "other"}
	assert.True(t, validator.OneOf("debt", allowed, "Source type").Valid)

	res := validator.OneOf("grant", allowed, "Source type")
	assert.False(t, res.Valid)
	assert.Equal(t, "Please select a valid source type", res.Message)
}
