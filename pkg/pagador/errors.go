package pagador

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrTimeout marks a transport timeout. Callers may retry idempotent
// queries on it; authorize/capture/void/refund must never be retried
// blindly (double-charge risk).
var ErrTimeout = errors.New("pagador: request timed out")

// ValidationError reports malformed or missing input. It is returned
// before any network call is attempted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pagador: invalid %s: %s", e.Field, e.Reason)
}

// TransportError wraps a failure between client and gateway: connection
// refused, TLS failure, timeout, or a non-2xx status with an empty body.
// Timeouts additionally match ErrTimeout via errors.Is.
type TransportError struct {
	Err     error
	Timeout bool
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("pagador: transport timeout: %v", e.Err)
	}
	return fmt.Sprintf("pagador: transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == ErrTimeout && e.Timeout
}

// ParseError reports a response body that does not match the expected
// envelope shape for the operation, or a status code outside the known
// table. It signals a gateway contract change and is never swallowed.
type ParseError struct {
	Op     string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pagador: %s: malformed response: %s", e.Op, e.Reason)
}

// newTransportError classifies a fetcher error, detecting timeouts from
// context deadlines and net-level timeout errors.
func newTransportError(err error) *TransportError {
	te := &TransportError{Err: err}
	var nerr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		te.Timeout = true
	case errors.As(err, &nerr) && nerr.Timeout():
		te.Timeout = true
	}
	return te
}
