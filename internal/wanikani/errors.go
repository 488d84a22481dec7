package wanikani

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the API rejects the token.
var ErrUnauthorized = errors.New("wanikani: unauthorized")

// TransportError reports a failed request: the connection broke or the API
// answered with a non-success status.
type TransportError struct {
	Op     string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		if e.Err != nil {
			return fmt.Sprintf("wanikani: %s: status %d: %v", e.Op, e.Status, e.Err)
		}
		return fmt.Sprintf("wanikani: %s: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("wanikani: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError reports a response body that could not be understood.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("wanikani: %s: decode: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
