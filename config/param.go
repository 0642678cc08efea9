package config

import (
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-params/check"
)

// Param declares a parameter: how its value is checked, its default, whether
// it must be set and what it is for. A nil Checker accepts anything.
type Param struct {
	Checker  check.Checker
	Default  any
	Required bool
	Desc     string
}

// ParamOption adjusts a Param built by NewParam.
type ParamOption func(*Param)

// WithDefault sets the value used when nothing was collected.
// The default goes through the checker like any other value.
func WithDefault(value any) ParamOption {
	return func(p *Param) {
		p.Default = value
	}
}

// Required marks the parameter as mandatory.
func Required() ParamOption {
	return func(p *Param) {
		p.Required = true
	}
}

// WithDesc sets the description shown in help output.
func WithDesc(desc string) ParamOption {
	return func(p *Param) {
		p.Desc = desc
	}
}

// NewParam builds a Param from a checker or a type shorthand accepted by check.Of.
func NewParam(shorthand any, opts ...ParamOption) (Param, error) {
	checker, err := check.Of(shorthand)
	if err != nil {
		return Param{}, fmt.Errorf("declaring parameter: %w", err)
	}

	param := Param{Checker: checker, Default: nil, Required: false, Desc: ""}
	for _, apply := range opts {
		apply(&param)
	}

	return param, nil
}

// MustParam is like NewParam but panics on an invalid shorthand.
func MustParam(shorthand any, opts ...ParamOption) Param {
	param, err := NewParam(shorthand, opts...)
	if err != nil {
		panic(err)
	}

	return param
}

func (p Param) checker() check.Checker {
	if p.Checker == nil {
		return check.Anything()
	}

	return p.Checker
}

// Help describes the parameter's constraint.
func (p Param) Help() string {
	return p.checker().Help()
}

// String renders the parameter as "[Required] [default=v] constraint: description".
func (p Param) String() string {
	var builder strings.Builder

	if p.Required {
		builder.WriteString("[Required] ")
	}

	if p.Default != nil {
		fmt.Fprintf(&builder, "[default=%v] ", p.Default)
	}

	builder.WriteString(p.Help())

	if p.Desc != "" {
		builder.WriteString(": " + p.Desc)
	}

	return builder.String()
}

// check runs the checker, turning a panic into an error.
func (p Param) check(value any) (result any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result, err = nil, fmt.Errorf("%w: checker panicked: %v", check.ErrCheck, recovered)
		}
	}()

	return p.checker().Check(value)
}
