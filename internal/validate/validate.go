// Package validate checks partial entities before any mutation is attempted.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nikmy/fleetsync/internal/entity"
)

type Result struct {
	Valid  bool
	Errors []string
}

func (r Result) String() string {
	return strings.Join(r.Errors, ", ")
}

func OK() Result {
	return Result{Valid: true}
}

type Validator interface {
	Validate(f entity.Fields) Result
}

// Func adapts a plain function to Validator.
type Func func(f entity.Fields) Result

func (fn Func) Validate(f entity.Fields) Result {
	return fn(f)
}

// Rule binds a validator tag (see go-playground/validator) to a field.
// Rules only look at fields present in the partial entity.
type Rule struct {
	Field string
	Label string
	Tag   string
}

type Rules struct {
	rules []Rule
	v     *validator.Validate
}

func NewRules(rules ...Rule) *Rules {
	return &Rules{
		rules: rules,
		v:     validator.New(),
	}
}

func (r *Rules) Validate(f entity.Fields) Result {
	var errs []string

	for _, rule := range r.rules {
		value, present := f[rule.Field]
		if !present {
			continue
		}

		err := r.check(value, rule.Tag)
		if err == nil {
			continue
		}

		errs = append(errs, describe(rule, err))
	}

	if len(errs) == 0 {
		return OK()
	}
	return Result{Errors: errs}
}

func (r *Rules) check(value any, tag string) (err error) {
	// validator panics on tags that do not apply to the value's kind
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
	}()
	return r.v.Var(value, tag)
}

// All runs every validator and concatenates the reasons.
func All(validators ...Validator) Validator {
	return Func(func(f entity.Fields) Result {
		var errs []string
		for _, v := range validators {
			res := v.Validate(f)
			if !res.Valid {
				errs = append(errs, res.Errors...)
			}
		}
		if len(errs) == 0 {
			return OK()
		}
		return Result{Errors: errs}
	})
}

var messages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email",
	"e164":     "%s must be a valid phone number",
	"gt":       "%s must be greater than %s",
	"gte":      "%s must be at least %s",
	"lt":       "%s must be less than %s",
	"lte":      "%s must be at most %s",
	"min":      "%s must be at least %s",
	"max":      "%s must be at most %s",
	"len":      "%s must have length %s",
	"oneof":    "%s must be one of: %s",
	"datetime": "%s must be a date in format %s",
	"alphanum": "%s must contain only letters and digits",
}

func describe(rule Rule, err error) string {
	label := rule.Label
	if label == "" {
		label = rule.Field
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return fmt.Sprintf("%s is invalid", label)
	}

	fe := fieldErrs[0]
	format, known := messages[fe.Tag()]
	if !known {
		return fmt.Sprintf("%s is invalid (%s)", label, fe.Tag())
	}

	if strings.Count(format, "%s") == 2 {
		return fmt.Sprintf(format, label, strings.ReplaceAll(fe.Param(), " ", ", "))
	}
	return fmt.Sprintf(format, label)
}
