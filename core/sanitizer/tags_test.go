package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/onboarding/core/sanitizer"
)

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	type contact struct {
		Phone string `sanitize:"trim,phone"`
	}
	type upload struct {
		AccountID   string   `sanitize:"trim"`
		Filename    string   `sanitize:"filename"`
		Description string   `sanitize:"text,max:10"`
		Tags        []string `sanitize:"trim_lower"`
		Note        *string  `sanitize:"single_line"`
		Contact     contact
		Owner       *contact
		Raw         string
		Skip        string `sanitize:"-"`
		Count       int
	}

	note := "line one\nline two"
	in := upload{
		AccountID:   "  acc-1 ",
		Filename:    "My Report (v2).PDF",
		Description: "  Board \x00minutes   for 2024 ",
		Tags:        []string{" KYC ", "Licence"},
		Note:        &note,
		Contact:     contact{Phone: " +971 (50) 123 "},
		Owner:       &contact{Phone: "+44 20"},
		Raw:         "  raw  ",
		Skip:        "  skip  ",
	}

	require.NoError(t, sanitizer.SanitizeStruct(&in))
	assert.Equal(t, "acc-1", in.AccountID)
	assert.Equal(t, "My_Report_v2.pdf", in.Filename)
	assert.Equal(t, "Board minu", in.Description)
	assert.Equal(t, []string{"kyc", "licence"}, in.Tags)
	assert.Equal(t, "line one line two", *in.Note)
	assert.Equal(t, "97150123", in.Contact.Phone)
	assert.Equal(t, "4420", in.Owner.Phone)
	assert.Equal(t, "  raw  ", in.Raw)
	assert.Equal(t, "  skip  ", in.Skip)
}

func TestSanitizeStructErrors(t *testing.T) {
	t.Parallel()

	type form struct {
		Name string `sanitize:"trim,shout"`
	}
	assert.ErrorIs(t, sanitizer.SanitizeStruct(form{}), sanitizer.ErrNotStruct)
	assert.ErrorIs(t, sanitizer.SanitizeStruct(&form{Name: "x"}), sanitizer.ErrUnknownSanitizer)

	s := "x"
	assert.ErrorIs(t, sanitizer.SanitizeStruct(&s), sanitizer.ErrNotStruct)
}

func TestRegisterSanitizer(t *testing.T) {
	t.Parallel()

	sanitizer.RegisterSanitizer("dfsa_ref", func(s string) string {
		return strings.ToUpper(strings.TrimSpace(s))
	})
	got, err := sanitizer.Apply(" dfsa-202406-00001 ", "dfsa_ref")
	require.NoError(t, err)
	assert.Equal(t, "DFSA-202406-00001", got)
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Dub", sanitizer.Truncate("Dubai", 3))
	assert.Equal(t, "دبي", sanitizer.Truncate("دبي", 5))
	assert.Equal(t, "مر", sanitizer.Truncate("مرحبا", 2))

	_, err := sanitizer.Apply("x", "max:ten")
	assert.ErrorIs(t, err, sanitizer.ErrUnknownSanitizer)
}
