package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
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
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrConcurrencyConflict  = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidStrategy      = NewDomainError("INVALID_STRATEGY", "Pricing strategy configuration is invalid")
	ErrInvalidPriceWindow   = NewDomainError("INVALID_PRICE_WINDOW", "Price list start date must be before end date")
	ErrNegativePrice        = NewDomainError("NEGATIVE_PRICE", "Price cannot be negative")
	ErrUnknownPaymentMethod = NewDomainError("UNKNOWN_PAYMENT_METHOD", "Payment method is not configured")
)
