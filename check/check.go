package check

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// ErrCheck is wrapped by every value rejected by a Checker.
var ErrCheck = errors.New("check failed")

// ErrInvalidChecker is returned by Of for values that are neither a Checker
// nor a supported type shorthand.
var ErrInvalidChecker = errors.New("invalid checker")

// Checker coerces and validates a single value.
type Checker interface {
	// Check returns the coerced value, or an error wrapping ErrCheck.
	Check(value any) (any, error)
	// Help describes the constraint in a few words.
	Help() string
}

// Of returns the Checker described by shorthand.
func Of(shorthand any) (Checker, error) {
	switch typed := shorthand.(type) {
	case Checker:
		return typed, nil
	case reflect.Type:
		if typed != nil {
			return ofKind(typed.Kind())
		}
	case reflect.Kind:
		return ofKind(typed)
	}

	return nil, fmt.Errorf("%w: %T", ErrInvalidChecker, shorthand)
}

// MustOf is like Of but panics on an invalid shorthand. It is meant for
// package-level declarations.
func MustOf(shorthand any) Checker {
	checker, err := Of(shorthand)
	if err != nil {
		panic(err)
	}

	return checker
}

func ofKind(kind reflect.Kind) (Checker, error) {
	switch kind { //nolint:exhaustive // only primitive shorthands are supported
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(), nil
	case reflect.Float32, reflect.Float64:
		return Float(), nil
	case reflect.String:
		return Str(), nil
	case reflect.Bool:
		return Bool(), nil
	default:
		return nil, fmt.Errorf("%w: kind %s", ErrInvalidChecker, kind)
	}
}

func failf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCheck, fmt.Sprintf(format, args...))
}

type intChecker struct{}

// Int coerces numbers and numeric strings to int. Fractional numbers are
// truncated; fractional strings are rejected.
func Int() Checker { return intChecker{} }

func (intChecker) Check(value any) (any, error) {
	if text, ok := value.(string); ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(text), 10, 0)
		if err != nil {
			return nil, failf("%q is not an int", text)
		}

		return int(parsed), nil
	}

	number, ok := toFloat(value)
	if !ok || math.IsNaN(number) || math.IsInf(number, 0) {
		return nil, failf("%v (%T) is not an int", value, value)
	}

	if integer, exact, fits := toInt(value); exact {
		if !fits {
			return nil, failf("%v overflows int", value)
		}

		return integer, nil
	}

	if number < math.MinInt || number >= math.MaxInt {
		return nil, failf("%v overflows int", value)
	}

	return int(number), nil
}

func (intChecker) Help() string { return "an int" }

type floatChecker struct{}

// Float coerces numbers and numeric strings to float64.
func Float() Checker { return floatChecker{} }

func (floatChecker) Check(value any) (any, error) {
	if text, ok := value.(string); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return nil, failf("%q is not a float", text)
		}

		return parsed, nil
	}

	number, ok := toFloat(value)
	if !ok {
		return nil, failf("%v (%T) is not a float", value, value)
	}

	return number, nil
}

func (floatChecker) Help() string { return "a float" }

type strChecker struct{}

// Str accepts strings only; it never converts.
func Str() Checker { return strChecker{} }

func (strChecker) Check(value any) (any, error) {
	text, ok := value.(string)
	if !ok {
		return nil, failf("%v (%T) is not a string", value, value)
	}

	return text, nil
}

func (strChecker) Help() string { return "a string" }

type boolChecker struct{}

// Bool accepts booleans, strings understood by strconv.ParseBool, and
// numbers, which are true when non-zero.
func Bool() Checker { return boolChecker{} }

func (boolChecker) Check(value any) (any, error) {
	switch typed := value.(type) {
	case bool:
		return typed, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		if err != nil {
			return nil, failf("%q is not a boolean", typed)
		}

		return parsed, nil
	}

	number, ok := toFloat(value)
	if !ok {
		return nil, failf("%v (%T) is not a boolean", value, value)
	}

	return number != 0, nil
}

func (boolChecker) Help() string { return "a boolean" }

type anything struct{}

// Anything accepts every value unchanged.
func Anything() Checker { return anything{} }

func (anything) Check(value any) (any, error) { return value, nil }

func (anything) Help() string { return "anything" }

// toFloat converts any Go number, including json.Number, to float64.
// Strings are not numbers here.
func toFloat(value any) (float64, bool) {
	switch typed := value.(type) {
	case json.Number:
		number, err := typed.Float64()

		return number, err == nil
	case bool, string, nil:
		return 0, false
	}

	reflected := reflect.ValueOf(value)

	switch {
	case reflected.CanInt():
		return float64(reflected.Int()), true
	case reflected.CanUint():
		return float64(reflected.Uint()), true
	case reflected.CanFloat():
		return reflected.Float(), true
	default:
		return 0, false
	}
}

// toInt converts integer kinds without going through float64. fits is false
// when the value is an integer outside the range of int.
func toInt(value any) (integer int, exact, fits bool) {
	if number, ok := value.(json.Number); ok {
		parsed, err := number.Int64()
		if err != nil {
			return 0, false, false
		}

		value = parsed
	}

	reflected := reflect.ValueOf(value)

	switch {
	case reflected.CanInt():
		signed := reflected.Int()
		if signed < math.MinInt || signed > math.MaxInt {
			return 0, true, false
		}

		return int(signed), true, true
	case reflected.CanUint():
		unsigned := reflected.Uint()
		if unsigned > math.MaxInt {
			return 0, true, false
		}

		return int(unsigned), true, true
	default:
		return 0, false, false
	}
}

func formatBound(bound float64) string {
	return strconv.FormatFloat(bound, 'g', -1, 64)
}
