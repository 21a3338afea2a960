package api

import "fmt"

// Error code classifying what went wrong with a backend call.
const (
	ErrCodeNetwork   = "NETWORK_ERROR"
	ErrCodeTimeout   = "TIMEOUT"
	ErrCodeBadStatus = "BAD_STATUS"
	ErrCodeMalformed = "MALFORMED_RESPONSE"
	ErrCodeNotFound  = "NOT_FOUND"
)

// Error is the uniform shape every transport failure collapses into
// before it reaches the state stores. The stores record only Message.
type Error struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode,omitempty"`
	Code       string `json:"code,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// newError builds an Error with a formatted message.
func newError(code string, statusCode int, format string, args ...interface{}) *Error {
	return &Error{
		Message:    fmt.Sprintf(format, args...),
		StatusCode: statusCode,
		Code:       code,
	}
}

// IsNotFound reports whether err is a normalized 404.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Code == ErrCodeNotFound
}
