package schema

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	slugPattern   = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	couponPattern = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// IsSlug reports whether s is lowercase letters and digits in
// hyphen-separated runs.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// FieldErrors maps a JSON field path (e.g. "slug", "items[0].quantity") to a
// human readable message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validator wraps a validator.Validate configured with the shop's custom
// rules. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
		return IsSlug(fl.Field().String())
	})
	mustRegister(v, "coupon", func(fl validator.FieldLevel) bool {
		return couponPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "imageref", func(fl validator.FieldLevel) bool {
		ref := fl.Field().String()
		return strings.HasPrefix(ref, "/") || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
	})

	v.RegisterStructValidation(orderInsertRules, OrderInsert{})

	return &Validator{validate: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("schema: register %s: %v", tag, err))
	}
}

// Validate checks s and returns FieldErrors when any rule fails. Any other
// error means s was not a struct and is a programming error.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	return FormatValidationErrors(validationErrors)
}

func FormatValidationErrors(errs validator.ValidationErrors) FieldErrors {
	errorMessages := make(FieldErrors, len(errs))
	for _, err := range errs {
		field := fieldPath(err.Namespace())
		if _, exists := errorMessages[field]; exists {
			continue
		}
		errorMessages[field] = message(err)
	}
	return errorMessages
}

// fieldPath drops the struct name validator puts in front of every
// namespace: "OrderInsert.items[0].price" becomes "items[0].price".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func message(err validator.FieldError) string {
	field := err.Field()
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must %s", field, sizeBound("at least", err))
	case "max":
		return fmt.Sprintf("%s must %s", field, sizeBound("at most", err))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, err.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "eq":
		return fmt.Sprintf("%s must be %s", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(err.Param(), " ", ", "))
	case "gtefield":
		return fmt.Sprintf("%s must not be before %s", field, err.Param())
	case "slug":
		return fmt.Sprintf("%s must be lowercase letters, numbers, and hyphens only", field)
	case "coupon":
		return fmt.Sprintf("%s must be uppercase letters and numbers only", field)
	case "imageref":
		return fmt.Sprintf("%s must be an http(s) URL or an absolute path", field)
	case "mpesa_required":
		return "Valid M-Pesa code is required for this payment method."
	case "total_mismatch":
		return fmt.Sprintf("total must equal the items subtotal plus shipping (%s)", err.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

func sizeBound(prefix string, err validator.FieldError) string {
	switch err.Kind() {
	case reflect.String:
		return fmt.Sprintf("be %s %s characters", prefix, err.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("contain %s %s items", prefix, err.Param())
	default:
		return fmt.Sprintf("be %s %s", prefix, err.Param())
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return fld.Name
	}
	return name
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
