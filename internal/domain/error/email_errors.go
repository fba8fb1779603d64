package error

import "errors"

// Alert delivery failures. Delivery is best effort, so these are logged and
// never reach an HTTP response.
var (
	ErrTemplateRenderFailed  = errors.New("failed to render email template")
	ErrPermanentEmailFailure = errors.New("email rejected by provider")
	ErrTemporaryEmailFailure = errors.New("email provider unavailable")
)

// EmailErrorCode follows the EML-CCNNNN layout shared by every domain.
type EmailErrorCode string

const (
	ErrCodePermanentEmailFailure EmailErrorCode = "EML-040001"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EML-040002"
	ErrCodeTemplateRenderFailed  EmailErrorCode = "EML-040003"
)

// EmailError is a coded delivery failure.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *EmailError) Unwrap() error { return e.Err }

// NewEmailError creates an EmailError.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}
