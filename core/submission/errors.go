package submission

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/onboarding/core/form"
	"github.com/dmitrymomot/onboarding/core/sanitizer"
	"github.com/dmitrymomot/onboarding/core/validator"
)

var (
	// ErrDraftNotFound is returned by a DraftStore when an account has no draft.
	ErrDraftNotFound = errors.New("submission: draft not found")
	// ErrNotFound is returned by a Store for an unknown id or reference.
	ErrNotFound = errors.New("submission: application not found")
	// ErrIncomplete is returned by Submit when the record does not validate.
	ErrIncomplete = errors.New("submission: application is incomplete")
	// ErrMissingAccount is returned when no account id is given.
	ErrMissingAccount = errors.New("submission: account id is required")
	// ErrInvalidInput wraps the validation errors of a malformed account id
	// or step name.
	ErrInvalidInput = errors.New("submission: invalid input")
	// ErrNoDraftStore is returned by draft operations of a service built
	// without a DraftStore.
	ErrNoDraftStore = errors.New("submission: drafts are not configured")
	// ErrInvalidReference is returned by ParseReference.
	ErrInvalidReference = errors.New("submission: invalid reference")
)

// checkInput sanitizes and validates a tagged input struct in place. A
// missing account id maps to ErrMissingAccount.
func checkInput(in any) error {
	if err := sanitizer.SanitizeStruct(in); err != nil {
		return err
	}
	err := validator.ValidateStruct(in)
	if err == nil {
		return nil
	}
	for _, ve := range validator.ExtractValidationErrors(err) {
		if ve.Field == "accountId" && ve.Code == validator.CodeRequired {
			return ErrMissingAccount
		}
	}
	if validator.IsValidationError(err) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

// accountInput carries a bare account id through checkInput.
type accountInput struct {
	ID string `json:"accountId" label:"Account" sanitize:"trim" validate:"required;max:128;nohtml"`
}

func checkAccount(accountID string) (string, error) {
	in := accountInput{ID: accountID}
	if err := checkInput(&in); err != nil {
		return "", err
	}
	return in.ID, nil
}

// RejectedError carries the validation result of a blocked submission.
type RejectedError struct {
	Result form.Result
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: %d field(s) need attention", ErrIncomplete, len(e.Result.Errors))
}

func (e *RejectedError) Unwrap() error {
	return ErrIncomplete
}
