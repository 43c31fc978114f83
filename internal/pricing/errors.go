package pricing

import "fmt"

// InvalidDurationError is returned for a commitment duration outside the
// supported tier set. Unknown durations are a hard error, not a fallback to
// the undiscounted tier.
type InvalidDurationError struct {
	Months int
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid campaign duration %d months, must be one of: 3, 6, 12", e.Months)
}

// IncompleteInputError is returned when a quote is requested against inputs
// that are not fully loaded, e.g. state or national coverage with an empty
// region set. Callers must not show such a result as a valid (free) quote.
type IncompleteInputError struct {
	Reason string
}

func (e *IncompleteInputError) Error() string {
	return "pricing inputs incomplete: " + e.Reason
}
