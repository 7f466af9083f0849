package upstream

import "fmt"

// UnavailableError reports a network-level failure reaching an upstream:
// DNS resolution, connection refused, or a transport timeout. The upstream
// never produced an HTTP response.
type UnavailableError struct {
	// Target is the upstream that could not be reached.
	Target Target

	// Cause is the underlying transport error.
	Cause error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return fmt.Sprintf("upstream %q unavailable: %v", e.Target, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// UnknownTargetError reports a request spec naming a target that is not
// configured. This is a programming error in the route table, not a
// runtime condition.
type UnknownTargetError struct {
	Target Target
}

// Error implements the error interface.
func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown upstream target %q", e.Target)
}
