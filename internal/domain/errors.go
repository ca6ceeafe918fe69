package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedID is returned for a detail route parameter that is not a
// positive integer. It is rendered as "not found", never as a transport error.
var ErrMalformedID = errors.New("malformed entry id")

// ParseEntryID parses a detail route parameter.
func ParseEntryID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedID, raw)
	}
	return id, nil
}
