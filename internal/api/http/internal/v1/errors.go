package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	EmailAlreadyRegisteredCode    = 1001
	EmailAlreadyRegisteredMessage = "email already registered"
	UserNotFoundCode              = 1002
	UserNotFoundMessage           = "user not found"
	UserNotVerifiedCode           = 1003
	UserNotVerifiedMessage        = "account not verified, please verify your account"
	InvalidCredentialsCode        = 1004
	InvalidCredentialsMessage     = "invalid credentials"
	CodeExpiredCode               = 1005
	CodeExpiredMessage            = "verification code has expired"
	CodeMismatchCode              = 1006
	CodeMismatchMessage           = "invalid verification code"
	AlreadyVerifiedCode           = 1007
	AlreadyVerifiedMessage        = "user already verified"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	errorStruct := &ErrorStruct{
		ErrorCode:    UnknownErrorCode,
		ErrorMessage: UnknownErrorMessage,
	}

	switch code {
	case EmailAlreadyRegisteredCode:
		errorStruct.ErrorCode = EmailAlreadyRegisteredCode
		errorStruct.ErrorMessage = EmailAlreadyRegisteredMessage
	case UserNotFoundCode:
		errorStruct.ErrorCode = UserNotFoundCode
		errorStruct.ErrorMessage = UserNotFoundMessage
	case UserNotVerifiedCode:
		errorStruct.ErrorCode = UserNotVerifiedCode
		errorStruct.ErrorMessage = UserNotVerifiedMessage
	case InvalidCredentialsCode:
		errorStruct.ErrorCode = InvalidCredentialsCode
		errorStruct.ErrorMessage = InvalidCredentialsMessage
	case CodeExpiredCode:
		errorStruct.ErrorCode = CodeExpiredCode
		errorStruct.ErrorMessage = CodeExpiredMessage
	case CodeMismatchCode:
		errorStruct.ErrorCode = CodeMismatchCode
		errorStruct.ErrorMessage = CodeMismatchMessage
	case AlreadyVerifiedCode:
		errorStruct.ErrorCode = AlreadyVerifiedCode
		errorStruct.ErrorMessage = AlreadyVerifiedMessage
	}

	return errorStruct
}
