package domain

import (
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	NameMinLength = 2
	NameMaxLength = 100

	// AmountMax is the largest amount the products.amount INTEGER column holds
	AmountMax = math.MaxInt32
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report json names ("name", "amount") instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Violation represents a single field validation failure
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// productRules carries the validation tags for a product record
type productRules struct {
	Name   string `json:"name" validate:"required,min=2,max=100"`
	Amount int    `json:"amount" validate:"gte=0,lte=2147483647"`
}

// Validate checks a name/amount pair against the product rules.
// It returns nil when the pair is valid. Lengths are counted in characters.
func Validate(name string, amount int) []Violation {
	err := validate.Struct(productRules{Name: name, Amount: amount})
	if err == nil {
		return nil
	}
	return FormatValidationErrors(err)
}

// ValidateProduct checks a full product record
func ValidateProduct(p *Product) []Violation {
	return Validate(p.Name, p.Amount)
}

// AmountTypeViolation is reported when amount is present but is not an integer
func AmountTypeViolation() Violation {
	return Violation{Field: "amount", Message: "Value must be an integer"}
}

// NameTypeViolation is reported when name is present but is not a string
func NameTypeViolation() Violation {
	return Violation{Field: "name", Message: "Value must be a string"}
}

// FormatValidationErrors converts validator errors to a readable format
func FormatValidationErrors(err error) []Violation {
	var violations []Violation

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			violations = append(violations, Violation{
				Field:   e.Field(),
				Message: getErrorMessage(e),
			})
		}
	}

	return violations
}

func getErrorMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short, minimum length is " + e.Param()
	case "max":
		return "Value is too long, maximum length is " + e.Param()
	case "gte":
		return "Value must be greater than or equal to " + e.Param()
	case "lte":
		return "Value must be less than or equal to " + e.Param()
	default:
		return "Invalid value"
	}
}
