// Package validation checks request structs and reports field-level problems
// keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	v *validator.Validate

	reJurisdiction = regexp.MustCompile(`^[A-Z]{2}$`) // ISO-3166 alpha-2, e.g. GB
	reCurrency     = regexp.MustCompile(`^[A-Z]{3}$`) // ISO-4217, e.g. USD
)

func init() {
	v = validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("jurisdiction", func(fl validator.FieldLevel) bool {
		val := strings.TrimSpace(fl.Field().String())
		if val == "" {
			return true
		}
		return reJurisdiction.MatchString(strings.ToUpper(val))
	})

	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		val := strings.TrimSpace(fl.Field().String())
		if val == "" {
			return true
		}
		return reCurrency.MatchString(strings.ToUpper(val))
	})

	_ = v.RegisterValidation("complexity", enumRule(func(s string) bool {
		_, err := domain.ParseComplexity(s)
		return err == nil
	}))
	_ = v.RegisterValidation("pipelinestage", enumRule(func(s string) bool {
		_, err := domain.ParsePipelineStage(s)
		return err == nil
	}))
	_ = v.RegisterValidation("expertstatus", enumRule(func(s string) bool {
		_, err := domain.ParseExpertStatus(s)
		return err == nil
	}))

	// Money must be strictly positive.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("positive", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
}

func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		val := strings.TrimSpace(fl.Field().String())
		if val == "" {
			return true
		}
		return valid(val)
	}
}

// Fields validates s and returns map[field][]messages, or nil when s is valid.
func Fields(s any) (map[string][]string, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, err
	}
	out := make(map[string][]string)
	for _, e := range ve {
		field := e.Field()
		out[field] = append(out[field], message(e))
	}
	return out, nil
}

// Validate validates s and returns a *apperrors.ValidationError describing
// every failing field, or nil.
func Validate(s any) error {
	fields, err := Fields(s)
	if err != nil {
		return fmt.Errorf("validate %T: %w", s, err)
	}
	if len(fields) == 0 {
		return nil
	}
	return &apperrors.ValidationError{Fields: fields}
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("Must be at least %s", e.Param())
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("Must be at most %s", e.Param())
	case "oneof":
		return "Value is not allowed"
	case "uuid", "uuid4":
		return "Invalid UUID format"
	case "jurisdiction":
		return "Invalid jurisdiction code (use ISO-3166 alpha-2, e.g. GB)"
	case "currency":
		return "Invalid currency code (use ISO-4217, e.g. USD)"
	case "complexity":
		return "Unknown complexity level"
	case "pipelinestage":
		return "Unknown pipeline stage"
	case "expertstatus":
		return "Unknown expert status"
	case "positive":
		return "Must be greater than zero"
	}
	return e.Error()
}
