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
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnknownEventKind  = NewDomainError("UNKNOWN_EVENT_KIND", "Unknown ledger event kind")
	ErrInvalidBucketSpec = NewDomainError("INVALID_BUCKET_SPEC", "Aging bucket boundaries must be distinct and ascending")
	ErrEmptyFieldMap     = NewDomainError("EMPTY_FIELD_MAP", "Field map must name at least a date and an amount field")
)
