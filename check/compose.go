package check

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

type inRange struct {
	low  float64
	high float64
}

// InRange accepts numbers between low and high, bounds included. The value
// is returned unchanged, so put a coercing checker in front of it with And
// when the input may be a string.
func InRange(low, high float64) Checker {
	return inRange{low: low, high: high}
}

// AtLeast is InRange with no upper bound.
func AtLeast(low float64) Checker {
	return inRange{low: low, high: math.Inf(1)}
}

func (r inRange) Check(value any) (any, error) {
	number, ok := toFloat(value)
	if !ok {
		return nil, failf("%v (%T) is not a number", value, value)
	}

	if number < r.low || number > r.high {
		return nil, failf("%v is not %s", value, r.Help())
	}

	return value, nil
}

func (r inRange) Help() string {
	return fmt.Sprintf("between %s and %s", formatBound(r.low), formatBound(r.high))
}

type and struct {
	checkers []Checker
}

// And threads the value through every checker in order, each one receiving
// the previous one's output. It stops at the first failure.
func And(checkers ...Checker) Checker {
	return and{checkers: checkers}
}

func (a and) Check(value any) (any, error) {
	result := value

	for _, checker := range a.checkers {
		var err error

		result, err = checker.Check(result)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (a and) Help() string {
	return joinHelp(a.checkers, " and ")
}

type or struct {
	checkers []Checker
}

// Or returns the result of the first checker that accepts the value.
func Or(checkers ...Checker) Checker {
	return or{checkers: checkers}
}

func (o or) Check(value any) (any, error) {
	for _, checker := range o.checkers {
		result, err := checker.Check(value)
		if err == nil {
			return result, nil
		}
	}

	return nil, failf("none of the conditions are valid for %v", value)
}

func (o or) Help() string {
	return joinHelp(o.checkers, " or ")
}

func joinHelp(checkers []Checker, separator string) string {
	parts := make([]string, 0, len(checkers))
	for _, checker := range checkers {
		parts = append(parts, checker.Help())
	}

	return strings.Join(parts, separator)
}

type oneOf struct {
	values []any
}

// OneOf accepts values equal to one of the given choices and returns the
// matching choice. A string input also matches a choice whose printed form
// is the same, so "3" selects the choice 3.
func OneOf(values ...any) Checker {
	return oneOf{values: values}
}

func (o oneOf) Check(value any) (any, error) {
	for _, choice := range o.values {
		if reflect.DeepEqual(choice, value) {
			return choice, nil
		}
	}

	if text, ok := value.(string); ok {
		for _, choice := range o.values {
			if fmt.Sprint(choice) == text {
				return choice, nil
			}
		}
	}

	return nil, failf("%v is not %s", value, o.Help())
}

func (o oneOf) Help() string {
	parts := make([]string, 0, len(o.values))
	for _, choice := range o.values {
		parts = append(parts, fmt.Sprint(choice))
	}

	return "one of " + strings.Join(parts, ", ")
}
