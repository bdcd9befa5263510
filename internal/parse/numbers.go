package parse

import (
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// skipCommaWhitespace returns the number of separator bytes at the
// start of b: whitespace with at most one comma.
func skipCommaWhitespace(b []byte) int {
	i := 0
	comma := false
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\n', '\r', '\f':
			i++
		case ',':
			if comma {
				return i
			}
			comma = true
			i++
		default:
			return i
		}
	}
	return i
}

// Number parses a single number, ignoring surrounding whitespace.
func Number(s string) (float64, bool) {
	b := []byte(strings.TrimSpace(s))
	if len(b) == 0 {
		return 0, false
	}
	f, n := strconv.ParseFloat(b)
	if n != len(b) {
		return 0, false
	}
	return f, true
}

// Numbers parses a list of numbers separated by whitespace and/or commas.
// Parsing stops at the first malformed entry; the numbers read so far
// are returned with ok=false.
func Numbers(s string) ([]float64, bool) {
	b := []byte(s)
	var out []float64
	i := skipCommaWhitespace(b)
	for i < len(b) {
		f, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return out, false
		}
		out = append(out, f)
		i += n
		i += skipCommaWhitespace(b[i:])
	}
	return out, true
}

// NumberPair parses "a [b]", returning b = a when only one number is given.
// It is the shape of stdDeviation, radius, baseFrequency and similar
// attributes.
func NumberPair(s string) (a, b float64, ok bool) {
	nums, ok := Numbers(s)
	switch {
	case !ok || len(nums) == 0 || len(nums) > 2:
		return 0, 0, false
	case len(nums) == 1:
		return nums[0], nums[0], true
	default:
		return nums[0], nums[1], true
	}
}

// Integer parses a number and truncates it to an int.
func Integer(s string) (int, bool) {
	f, ok := Number(s)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Opacity parses an opacity value given as a number or a percentage and
// clamps it to [0, 1]. Empty or malformed values yield def.
func Opacity(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = s[:len(s)-1]
		scale = 0.01
	}
	f, ok := Number(s)
	if !ok {
		return def
	}
	return min(max(f*scale, 0), 1)
}
