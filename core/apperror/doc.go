// Package apperror classifies failures into a small taxonomy and renders
// them for end users.
//
// Kinds are validation, required, format, network, storage, authentication,
// permission and system. Each Error carries the fields relevant to its kind:
// a field path for validation failures, status code and retryability for
// network failures, operation and file for storage failures.
//
//	e := apperror.Network("GET /accounts failed", 503, "/accounts", true)
//	apperror.Format(e)        // "A server error occurred. Please try again later."
//	apperror.IsRecoverable(e) // true
//
// Classify turns arbitrary errors into the taxonomy, and Summary folds a
// list of field errors into one paragraph:
//
//	apperror.Summary(errs)
//	// Please correct the following errors:
//	// • Contact email is required
//	// • Total shareholding must equal 100%. Please adjust ownership percentages.
package apperror
