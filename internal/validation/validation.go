package validation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrDaysNotInteger is returned when the days query parameter is present but not a base-10 int32.
var ErrDaysNotInteger = errors.New("days must be an integer")

// ParseDays parses the raw days query value. An empty or whitespace-only value yields
// defaultDays. Range is not checked here; out-of-range values are clamped by the generator.
func ParseDays(raw string, defaultDays int) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return defaultDays, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrDaysNotInteger, raw)
	}
	return int(n), nil
}
