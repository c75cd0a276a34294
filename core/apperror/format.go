package apperror

import (
	"net/http"
	"strings"
)

const (
	msgNotFound         = "The requested resource was not found."
	msgForbidden        = "You do not have permission to perform this action."
	msgServer           = "A server error occurred. Please try again later."
	msgNetworkRetry     = "A network error occurred. Please check your connection and try again."
	msgNetworkFatal     = "A network error occurred. Please contact support if this continues."
	msgUploadFailed     = "Failed to upload file. Please check the file size and format."
	msgDownloadFailed   = "Failed to download file. Please try again."
	msgDeleteFailed     = "Failed to delete file. Please try again."
	msgStorageFailed    = "A file storage error occurred. Please try again."
	msgSessionExpired   = "Your session has expired. Please log in again."
	msgUnexpectedFailed = "An unexpected error occurred. Please try again or contact support."
)

// Format renders an error as a message fit for an end user.
func Format(e *Error) string {
	if e == nil {
		return ""
	}

	switch e.Kind {
	case KindValidation, KindRequired, KindFormat:
		return e.Message
	case KindNetwork:
		switch {
		case e.StatusCode == http.StatusNotFound:
			return msgNotFound
		case e.StatusCode == http.StatusForbidden:
			return msgForbidden
		case e.StatusCode >= http.StatusInternalServerError:
			return msgServer
		case e.Retryable:
			return msgNetworkRetry
		}
		return msgNetworkFatal
	case KindStorage:
		switch e.Operation {
		case OpUpload:
			return msgUploadFailed
		case OpDownload:
			return msgDownloadFailed
		case OpDelete:
			return msgDeleteFailed
		}
		return msgStorageFailed
	case KindAuthentication:
		return msgSessionExpired
	case KindPermission:
		return msgForbidden
	}
	return msgUnexpectedFailed
}

// FormatAll renders each error in order.
func FormatAll(errs []*Error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			out = append(out, Format(e))
		}
	}
	return out
}

// Summary renders a list of field errors as a single paragraph, bulleting
// them when there is more than one.
func Summary(errs []*Error) string {
	msgs := FormatAll(errs)
	switch len(msgs) {
	case 0:
		return ""
	case 1:
		return "Please correct the following error: " + msgs[0]
	}

	var b strings.Builder
	b.WriteString("Please correct the following errors:")
	for _, m := range msgs {
		b.WriteString("\n• ")
		b.WriteString(m)
	}
	return b.String()
}

// IsRecoverable reports whether the user can fix the problem without help.
func IsRecoverable(e *Error) bool {
	if e == nil {
		return true
	}
	switch e.Kind {
	case KindValidation, KindRequired, KindFormat, KindStorage, KindAuthentication:
		return true
	case KindNetwork:
		return e.Retryable
	}
	return false
}

// Suggestions lists next steps to show alongside the formatted message.
func Suggestions(e *Error) []string {
	if e == nil {
		return nil
	}

	switch e.Kind {
	case KindValidation, KindRequired, KindFormat:
		return []string{"Review the highlighted fields and correct any errors"}
	case KindNetwork:
		s := []string{"Check your internet connection", "Try again in a few moments"}
		if !e.Retryable {
			s = append(s, "Contact support if the problem persists")
		}
		return s
	case KindStorage:
		if e.Operation == OpUpload {
			return []string{
				"Check that the file is smaller than 5MB",
				"Use a supported format: PDF, DOCX, XLSX, JPG, PNG or PPTX",
			}
		}
		return []string{"Try again in a few moments"}
	case KindAuthentication:
		return []string{"Log in again to continue"}
	case KindPermission:
		return []string{"Contact your administrator to request access"}
	}
	return []string{"Refresh the page and try again", "Contact support if the problem persists"}
}
