package check

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

//nolint:gochecknoglobals // validator caches parsed tags; one instance serves every Tag checker.
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func sharedValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	return validate
}

type tagChecker struct {
	tag string
}

// Tag validates the value against a go-playground/validator tag such as
// "min=1,max=10" or "email". The value is returned unchanged.
func Tag(tag string) Checker {
	return tagChecker{tag: tag}
}

func (t tagChecker) Check(value any) (result any, err error) {
	// validator panics on unknown tags.
	defer func() {
		if recovered := recover(); recovered != nil {
			result, err = nil, failf("invalid tag %q: %v", t.tag, recovered)
		}
	}()

	err = sharedValidator().Var(value, t.tag)
	if err != nil {
		return nil, failf("%v does not satisfy %q: %v", value, t.tag, err)
	}

	return value, nil
}

func (t tagChecker) Help() string {
	return "satisfying " + t.tag
}
