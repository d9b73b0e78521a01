package flow

import (
	"errors"
	"strconv"
	"strings"
)

// ErrBadAge means the input is not a usable age and the step must re-prompt.
var ErrBadAge = errors.New("flow: age must be a non-negative integer")

// ParseAge parses intake age input. Non-numeric and negative values are
// rejected the same way: no transition, re-prompt.
func ParseAge(input string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || age < 0 {
		return 0, ErrBadAge
	}
	return age, nil
}
