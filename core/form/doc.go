// Package form validates a whole onboarding record against a schema.
//
// Validate walks every field in declaration order and reports all failures
// at once, keyed by path ("businessAddress.city", "shareholders[1].name").
// A field is checked only when its condition holds. Missing mandatory
// fields get a required message; filled fields are dispatched to the
// validator kind named on the field, bound to its name, or implied by its
// type. Tables get row-count bounds, per-row column checks and, when all
// rows are valid, a check that the percentage column adds up to 100.
//
// ValidateField runs the same rules for a single path and is meant for
// on-blur feedback in a UI:
//
//	msg, err := form.ValidateField(s, "contactEmail", record)
//
// Both functions are pure: the same schema and record always give the same
// result.
package form
