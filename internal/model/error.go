package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeInvalidFilter   = "INVALID_FILTER"
	ErrCodeInvalidSort     = "INVALID_SORT"
	ErrCodeInvalidPage     = "INVALID_PAGE"
	ErrCodeInvalidViewMode = "INVALID_VIEW_MODE"
	ErrCodeProductNotFound = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound   = "ORDER_NOT_FOUND"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// DomainError is a business error with a stable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrProductNotFound = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound   = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrInvalidSort     = NewDomainError(ErrCodeInvalidSort, "Unknown sort option")
	ErrInvalidViewMode = NewDomainError(ErrCodeInvalidViewMode, "View mode must be grid or list")
	ErrInvalidPage     = NewDomainError(ErrCodeInvalidPage, "Page and page size must be positive")
)
