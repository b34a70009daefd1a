package errors

import "fmt"

// ErrorCode identifies an application error category. Codes are part of the
// API response contract, so they are stable strings rather than ints.
type ErrorCode string

const (
	ErrInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrSlotTaken       ErrorCode = "SLOT_TAKEN"
	ErrNotFound        ErrorCode = "NOT_FOUND"
	ErrWrongPin        ErrorCode = "WRONG_PIN"
	ErrStoreTimeout    ErrorCode = "STORE_TIMEOUT"
	ErrStoreConflict   ErrorCode = "STORE_CONFLICT"
	ErrStoreIntegrity  ErrorCode = "STORE_INTEGRITY"
	ErrTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	ErrInternalServer  ErrorCode = "INTERNAL_SERVER_ERROR"
)

// AppError carries a code for the API layer and an optional wrapped cause.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsAppError converts any error into an *AppError, wrapping unknown errors
// as internal server errors so callers always have a code to map.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AppError); ok {
		return ae
	}
	return NewAppError(ErrInternalServer, err.Error(), err)
}
