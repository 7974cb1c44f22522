package rpn

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseFunc converts a pushed token into a stack value.
type ParseFunc func(token string) (float64, bool)

// ParseLenient reads the longest decimal prefix of token, ignoring anything after it.
// Leading white space and a sign are accepted, as is the literal "Infinity".
// An exponent is consumed only when digits follow it, so "1e" reads as 1.
func ParseLenient(token string) (float64, bool) {
	s := strings.TrimLeftFunc(token, isLeadingSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if i > 0 && s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0, false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}

	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// ParseStrict requires the whole trimmed token to be a float. NaN is rejected.
func ParseStrict(token string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(token), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLeadingSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
