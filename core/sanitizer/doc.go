// Package sanitizer provides small string normalization helpers shared by the
// field validators and the document store.
//
// The helpers are pure functions and never fail. They trim and collapse
// whitespace, detect markup characters, strip phone number formatting before
// digit counting, and turn user supplied file names into safe storage keys.
//
//	import "github.com/dmitrymomot/onboarding/core/sanitizer"
//
//	sanitizer.ContainsHTML("<b>Acme</b>")         // true
//	sanitizer.StripPhoneFormatting("+1 (555) 123") // "1555123"
//	sanitizer.SanitizeFilename("My Report (v2).PDF") // "My_Report_v2.pdf"
package sanitizer
