package engine

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// FormatNumber renders f the way the display shows results: shortest
// round-trip digits, "Infinity", "-Infinity" and "NaN" for special values,
// and exponent form outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseOperand reads operand text as a decimal number. Text must start with a
// digit or a decimal point (after an optional minus sign) or be the rendered
// form of an infinity; NaN never counts as a number.
func parseOperand(s string) (float64, bool) {
	body := strings.TrimPrefix(s, "-")
	if body != "Infinity" && !startsNumeral(body) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func startsNumeral(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return c == '.' || (c >= '0' && c <= '9')
}
