package pricing

import (
	"strconv"
	"strings"
)

// ParseAmount reads a stored decimal string as an int. Empty, missing or
// non-numeric input reads as 0; partial numbers ("12x") do not parse.
// The engine never fails on bad data.
func ParseAmount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
