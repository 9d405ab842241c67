package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeItemNotFound       = "ITEM_NOT_FOUND"
	ErrCodeItemNotInCart      = "ITEM_NOT_IN_CART"
	ErrCodeUnknownFunction    = "UNKNOWN_FUNCTION"
	ErrCodeRestaurantNotFound = "RESTAURANT_NOT_FOUND"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError carries a stable code alongside the customer-facing message.
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

// Common domain errors. The messages are surfaced verbatim inside
// function-result payloads, so they stay short and customer-facing.
var (
	ErrItemNotFound       = NewDomainError(ErrCodeItemNotFound, "Item not found")
	ErrItemNotInCart      = NewDomainError(ErrCodeItemNotInCart, "Item not in cart")
	ErrUnknownFunction    = NewDomainError(ErrCodeUnknownFunction, "Unknown function")
	ErrRestaurantNotFound = NewDomainError(ErrCodeRestaurantNotFound, "Restaurant not found")
)
