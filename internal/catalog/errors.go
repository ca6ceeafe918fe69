package catalog

import (
	"errors"
	"fmt"
)

// TransportError reports a non-2xx response or a network failure
// (Status 0). Context cancellation is never wrapped in one.
type TransportError struct {
	Status int
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("catalog: request %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("catalog: HTTP error! status: %d (%s)", e.Status, e.URL)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusOf returns the upstream status carried by err, if any.
func StatusOf(err error) (int, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Status, true
	}
	return 0, false
}
