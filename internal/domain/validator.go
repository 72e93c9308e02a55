package domain

import (
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var decimalRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ValidateInteger reports whether value holds an integer in [0, math.MaxInt64].
// Integer kinds, integral floats and base-10 strings are accepted.
func ValidateInteger(value any) bool {
	_, ok := toInteger(value)
	return ok
}

// ValidateFloat reports whether value is a finite, non-negative number.
// Strings must use decimal-point notation.
func ValidateFloat(value any) bool {
	f, ok := toFloat(value)
	return ok && f >= 0
}

// ValidateString reports whether value is a non-empty string.
func ValidateString(value any) bool {
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.String && rv.Len() > 0
}

func toInteger(value any) (int64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		return n, n >= 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
		if math.IsNaN(f) || f < 0 || f >= float64(math.MaxInt64) || f != math.Trunc(f) {
			return 0, false
		}
		return int64(f), true
	case reflect.String:
		return parseInteger(rv.String())
	}
	return 0, false
}

func parseInteger(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	digits := strings.TrimPrefix(s, "-")
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func toFloat(value any) (float64, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case reflect.String:
		s := strings.TrimSpace(rv.String())
		if !decimalRegex.MatchString(s) {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
