package driver

import (
	"errors"
	"fmt"
)

// Kind enumerates the error kinds a browser switch flow can fail with
type Kind int

const (
	// InvalidState - a flow was started while another flow was already active
	InvalidState Kind = iota

	// UserCanceled - the browser was dismissed without completing the flow
	UserCanceled

	// TransportError - the return URL was malformed or unexpected
	TransportError
)

var kindValues = [...]string{
	"invalid-state",
	"user-canceled",
	"transport-error",
}

// String representation of `Kind`
func (k Kind) String() string {
	return kindValues[k]
}

// FlowError is an error surfaced through a flow completion callback
type FlowError struct {
	Kind    Kind
	message string
}

// Error returns the message for the flow error
func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.message)
}

func newFlowError(kind Kind, format string, args ...interface{}) *FlowError {
	return &FlowError{Kind: kind, message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of a flow error, or false if err did not originate
// from a browser switch flow
func KindOf(err error) (Kind, bool) {
	var flowErr *FlowError
	if errors.As(err, &flowErr) {
		return flowErr.Kind, true
	}
	return 0, false
}
