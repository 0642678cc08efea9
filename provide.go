package params

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/inject"

	"go.uber.org/fx"
)

// ErrValueType is returned when a resolved value does not have the requested type.
var ErrValueType = errors.New("resolved value has unexpected type")

// Value provides the value resolved at path as a T named after the path,
// for constructors that take `name:"<path>"` parameters. An absent optional
// parameter provides the zero value.
func Value[T any](path string) fx.Option {
	return fx.Provide(
		fx.Annotate(
			func(cfg *config.Config) (T, error) {
				var zero T

				value, err := cfg.Get(path)
				if err != nil {
					return zero, fmt.Errorf("resolving %s: %w", path, err)
				}

				if value == nil {
					return zero, nil
				}

				typed, ok := value.(T)
				if !ok {
					return zero, fmt.Errorf("%w: %s is %T, not %T", ErrValueType, path, value, zero)
				}

				return typed, nil
			},
			fx.ResultTags(`name:"`+path+`"`),
		),
	)
}

// Bind provides a *T decoded from the namespace at path using yaml struct tags.
// If *T implements config.Validator it is validated as well.
func Bind[T any](path string) fx.Option {
	return fx.Provide(func(cfg *config.Config) (*T, error) {
		return config.Provider(new(T), path)(cfg)
	})
}

// Invoke calls fn with its bindings resolved from the application's Config
// when the application starts.
func Invoke(fn *inject.Func) fx.Option {
	return fx.Invoke(func(cfg *config.Config) error {
		_, err := fn.Using(cfg).Call()

		return err
	})
}
