package inject

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/tree"
)

var (
	// ErrAmbiguousOverride is returned when an argument is given positionally
	// and also injected or passed by name.
	ErrAmbiguousOverride = errors.New("ambiguity overriding config arguments, use a named argument to resolve it")

	// ErrArgumentType is returned when a value cannot be assigned to its parameter.
	ErrArgumentType = errors.New("argument type mismatch")

	// ErrNotAFunction is returned for targets that are not non-variadic
	// functions, or whose parameter names do not match their arity.
	ErrNotAFunction = errors.New("not an injectable function")

	// ErrUnknownArgument is returned for a binding or named argument that
	// matches no parameter name.
	ErrUnknownArgument = errors.New("unknown argument")

	// ErrMissingArgument is returned when a parameter receives no value.
	ErrMissingArgument = errors.New("missing argument")

	// ErrTooManyArguments is returned when more positional arguments are
	// given than the function accepts.
	ErrTooManyArguments = errors.New("too many positional arguments")
)

//nolint:gochecknoglobals // reflected once
var errorType = reflect.TypeFor[error]()

// Binding maps a parameter path to a function parameter name.
type Binding struct {
	Namespace tree.Path
	Path      tree.Path
	Name      string
	scoped    bool
}

// FullPath returns the namespace followed by the relative path.
func (b Binding) FullPath() tree.Path {
	return b.Namespace.Join(b.Path)
}

// Kwarg is an argument passed by name.
type Kwarg struct {
	Name  string
	Value any
}

// Arg passes value to the parameter called name.
func Arg(name string, value any) Kwarg {
	return Kwarg{Name: name, Value: value}
}

// Func is a function together with its parameter bindings.
// Building a Func is not safe for concurrent use; calling it is.
type Func struct {
	fn       reflect.Value
	names    []string
	index    map[string]int
	bindings []Binding
	defaults map[string]any
	cfg      *config.Config
	err      error
}

// New wraps fn, naming its parameters in order. Construction errors are
// reported by Call.
func New(fn any, names ...string) *Func {
	f := &Func{
		fn:       reflect.ValueOf(fn),
		names:    names,
		index:    make(map[string]int, len(names)),
		bindings: nil,
		defaults: map[string]any{},
		cfg:      nil,
		err:      nil,
	}

	switch {
	case fn == nil || f.fn.Kind() != reflect.Func:
		f.err = fmt.Errorf("%w: %T", ErrNotAFunction, fn)
	case f.fn.Type().IsVariadic():
		f.err = fmt.Errorf("%w: %s is variadic", ErrNotAFunction, f.fn.Type())
	case f.fn.Type().NumIn() != len(names):
		f.err = fmt.Errorf("%w: %s takes %d parameters, %d names given",
			ErrNotAFunction, f.fn.Type(), f.fn.Type().NumIn(), len(names))
	}

	for i, name := range names {
		if _, dup := f.index[name]; dup && f.err == nil {
			f.err = fmt.Errorf("%w: parameter name %q repeated", ErrNotAFunction, name)
		}

		f.index[name] = i
	}

	return f
}

// Param binds the parameter at path to the function parameter named after
// the path's last segment.
func (f *Func) Param(path string) *Func {
	relative := tree.P(path)

	return f.ParamAs(path, relative.Last())
}

// ParamAs binds the parameter at path to the function parameter name.
func (f *Func) ParamAs(path, name string) *Func {
	if _, ok := f.index[name]; !ok && f.err == nil {
		f.err = fmt.Errorf("%w: %q bound to %s", ErrUnknownArgument, name, path)
	}

	f.bindings = append(f.bindings, Binding{Namespace: nil, Path: tree.P(path), Name: name, scoped: false})

	return f
}

// Section sets the namespace of the most recent bindings that have none,
// stopping at the first binding that already has one.
func (f *Func) Section(namespace string) *Func {
	ns := tree.P(namespace)

	for i := len(f.bindings) - 1; i >= 0; i-- {
		if f.bindings[i].scoped {
			break
		}

		f.bindings[i].Namespace = ns
		f.bindings[i].scoped = true
	}

	return f
}

// Default sets the value used for the parameter name when neither the
// caller nor the configuration provides one.
func (f *Func) Default(name string, value any) *Func {
	if _, ok := f.index[name]; !ok && f.err == nil {
		f.err = fmt.Errorf("%w: default for %q", ErrUnknownArgument, name)
	}

	f.defaults[name] = value

	return f
}

// Using resolves bindings from cfg instead of config.Current.
func (f *Func) Using(cfg *config.Config) *Func {
	f.cfg = cfg

	return f
}

// Bindings returns the bindings in the order they were added.
func (f *Func) Bindings() []Binding {
	return append([]Binding(nil), f.bindings...)
}

// Call invokes the function. Arguments created with Arg are passed by name,
// all others positionally. When the function's last result is an error it is
// returned as err and left out of the results.
func (f *Func) Call(args ...any) ([]any, error) {
	if f.err != nil {
		return nil, f.err
	}

	positional, named := split(args)
	if len(positional) > len(f.names) {
		return nil, fmt.Errorf("%w: %d given, %d accepted", ErrTooManyArguments, len(positional), len(f.names))
	}

	filled, err := f.inject(named)
	if err != nil {
		return nil, err
	}

	for name, value := range named {
		filled[name] = value
	}

	in, err := f.arguments(positional, filled)
	if err != nil {
		return nil, err
	}

	return results(f.fn.Call(in))
}

// Result calls f and returns its first result as T.
func Result[T any](f *Func, args ...any) (T, error) {
	var zero T

	values, err := f.Call(args...)
	if err != nil {
		return zero, err
	}

	if len(values) == 0 {
		return zero, fmt.Errorf("%w: function returns no value", ErrArgumentType)
	}

	typed, ok := values[0].(T)
	if !ok && values[0] != nil {
		return zero, fmt.Errorf("%w: result is %T", ErrArgumentType, values[0])
	}

	return typed, nil
}

func (f *Func) source() *config.Config {
	if f.cfg != nil {
		return f.cfg
	}

	return config.Current()
}

func (f *Func) inject(named map[string]any) (map[string]any, error) {
	cfg := f.source()
	filled := map[string]any{}

	for _, binding := range f.bindings {
		if _, explicit := named[binding.Name]; explicit {
			continue
		}

		value, present, err := cfg.Resolve(binding.FullPath())
		if err != nil {
			return nil, fmt.Errorf("injecting %s: %w", binding.Name, err)
		}

		if present {
			filled[binding.Name] = value
		}
	}

	return filled, nil
}

func (f *Func) arguments(positional []any, filled map[string]any) ([]reflect.Value, error) {
	for name := range filled {
		i, ok := f.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArgument, name)
		}

		if i < len(positional) {
			return nil, fmt.Errorf("%w: %q is also given positionally", ErrAmbiguousOverride, name)
		}
	}

	typ := f.fn.Type()
	in := make([]reflect.Value, len(f.names))

	for i, name := range f.names {
		var value any

		switch fromDefault, hasDefault := f.defaults[name]; {
		case i < len(positional):
			value = positional[i]
		case hasKey(filled, name):
			value = filled[name]
		case hasDefault:
			value = fromDefault
		default:
			return nil, fmt.Errorf("%w: %q", ErrMissingArgument, name)
		}

		converted, err := convert(value, typ.In(i))
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}

		in[i] = converted
	}

	return in, nil
}

func split(args []any) ([]any, map[string]any) {
	positional := make([]any, 0, len(args))
	named := map[string]any{}

	for _, arg := range args {
		if kwarg, ok := arg.(Kwarg); ok {
			named[kwarg.Name] = kwarg.Value

			continue
		}

		positional = append(positional, arg)
	}

	return positional, named
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]

	return ok
}

func convert(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}

	reflected := reflect.ValueOf(value)

	switch {
	case reflected.Type().AssignableTo(target):
		return reflected, nil
	case numeric(reflected.Kind()) && numeric(target.Kind()):
		return reflected.Convert(target), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %T is not assignable to %s", ErrArgumentType, value, target)
	}
}

func numeric(kind reflect.Kind) bool {
	switch kind { //nolint:exhaustive // everything else is not numeric
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func results(out []reflect.Value) ([]any, error) {
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		last := out[n-1]
		out = out[:n-1]

		if !last.IsNil() {
			return values(out), last.Interface().(error) //nolint:forcetypeassert // type checked above
		}
	}

	return values(out), nil
}

func values(out []reflect.Value) []any {
	result := make([]any, len(out))
	for i, value := range out {
		result[i] = value.Interface()
	}

	return result
}
