package domain

import (
	"errors"
	"fmt"
)

const (
	ErrCodeInvalidCurrency = "INVALID_CURRENCY"
	ErrCodeInvalidValue    = "INVALID_VALUE"
	ErrCodeRateNotFound    = "RATE_NOT_FOUND"
)

// Error is a validation failure with a stable machine-readable code.
// Callers branch on the code, never on message text.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code string, format string, args ...interface{}) Error {
	return Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the stable code carried by err, or "" if err is
// not a domain error.
func ErrorCode(err error) string {
	var domainErr Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}
