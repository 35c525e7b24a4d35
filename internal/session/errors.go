package session

import "fmt"

// Validation reasons.
const (
	ReasonEmpty       = "empty"
	ReasonNotNumber   = "not a number"
	ReasonNotInteger  = "not an integer"
	ReasonNotPositive = "must be positive"
)

// ValidationError reports user input that cannot be accepted. State is left
// unchanged when it is returned.
type ValidationError struct {
	Field  string
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Input, e.Reason)
}

// Code satisfies the error-code convention used in handler logs.
func (e *ValidationError) Code() string { return "VALIDATION_ERROR" }
