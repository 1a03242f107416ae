package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeMissingField        = "MISSING_FIELD"
	ErrCodeProductNotFound     = "PRODUCT_NOT_FOUND"
	ErrCodeProductUnavailable  = "PRODUCT_UNAVAILABLE"
	ErrCodeInvalidKind         = "INVALID_KIND"
	ErrCodeInvalidQuantity     = "INVALID_QUANTITY"
	ErrCodeInvalidDuration     = "INVALID_DURATION"
	ErrCodeEmptyCheckout       = "EMPTY_CHECKOUT"
	ErrCodeSubmitInProgress    = "SUBMIT_IN_PROGRESS"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeOrderFailed         = "ORDER_FAILED"
	ErrCodeSessionRequired     = "SESSION_REQUIRED"
	ErrCodeSessionExpired      = "SESSION_EXPIRED"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
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
	ErrProductNotFound    = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrProductUnavailable = NewDomainError(ErrCodeProductUnavailable, "Product is not available for the requested option")
	ErrInvalidKind        = NewDomainError(ErrCodeInvalidKind, "Kind must be either rent or buy")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidDuration    = NewDomainError(ErrCodeInvalidDuration, "Rental duration must be at least one month")
	ErrCartDuration       = NewDomainError(ErrCodeInvalidDuration, "Cart rentals run for 3, 6 or 12 months")
	ErrNothingToCheckout  = NewDomainError(ErrCodeEmptyCheckout, "There is nothing to check out")
	ErrSubmitInProgress   = NewDomainError(ErrCodeSubmitInProgress, "An order is already being placed")
	ErrSessionExpired     = NewDomainError(ErrCodeSessionExpired, "Session expired, please log in again")
	ErrSessionRequired    = NewDomainError(ErrCodeSessionRequired, "A valid X-Session-ID header is required")
	ErrOrderNotFound      = NewDomainError(ErrCodeNotFound, "Order not found")
)
