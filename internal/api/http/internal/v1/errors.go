package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UserAlreadyExistsCode      = 1001
	UserAlreadyExistsMessage   = "user already exists"
	UserNotFoundCode           = 1002
	UserNotFoundMessage        = "user not found"
	TooManyAttemptsCode        = 1003
	TooManyAttemptsMessage     = "too many attempts, please try again later"
	InvalidVerificationCode    = 1004
	InvalidVerificationMessage = "incorrect email or verification code"
	InvalidCredentialsCode     = 1005
	InvalidCredentialsMessage  = "invalid credentials"
	UserNotVerifiedCode        = 1006
	UserNotVerifiedMessage     = "user email is not verified"
	InvalidRequestBodyCode     = 1007
	InvalidRequestBodyMessage  = "invalid request body"
	UnauthorizedCode           = 1008
	UnauthorizedMessage        = "unauthorized"

	ValidationErrorCode    = 6000
	ValidationErrorMessage = "Validation error"
)

type ErrorCode int
type ErrorMessage string

type ErrorStruct struct {
	ErrorCode    `json:"error_code"`
	ErrorMessage `json:"error_message"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
} // @name ValidationErrorStruct

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
} // @name ValidationError

var errorMessages = map[ErrorCode]ErrorMessage{
	UserAlreadyExistsCode:   UserAlreadyExistsMessage,
	UserNotFoundCode:        UserNotFoundMessage,
	TooManyAttemptsCode:     TooManyAttemptsMessage,
	InvalidVerificationCode: InvalidVerificationMessage,
	InvalidCredentialsCode:  InvalidCredentialsMessage,
	UserNotVerifiedCode:     UserNotVerifiedMessage,
	InvalidRequestBodyCode:  InvalidRequestBodyMessage,
	UnauthorizedCode:        UnauthorizedMessage,
}

func getErrorStruct(code ErrorCode) *ErrorStruct {
	message, ok := errorMessages[code]
	if !ok {
		return &ErrorStruct{
			ErrorCode:    UnknownErrorCode,
			ErrorMessage: UnknownErrorMessage,
		}
	}

	return &ErrorStruct{
		ErrorCode:    code,
		ErrorMessage: message,
	}
}
