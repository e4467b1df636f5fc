package shared

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors.
	// ErrorInvalidCredentials and ErrorInvalidOrExpiredCode are deliberately
	// uninformative: each merges several distinct causes so that callers
	// cannot tell whether an account exists.
	ErrorValidation           = errors.New("email and password are required")
	ErrorInvalidCredentials   = errors.New("invalid credentials")
	ErrorInvalidOrExpiredCode = errors.New("invalid or expired reset code")
	ErrorStore                = errors.New("store error")
	ErrorNotification         = errors.New("notification error")
)
