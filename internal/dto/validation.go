package dto

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// NewValidator returns a validator reading the same `binding` tags gin uses.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidations(v)
	return v
}

// RegisterValidations teaches v to compare decimal amounts with the numeric
// tags (gt, gte, ...). Call it on gin's engine as well.
func RegisterValidations(v *validator.Validate) {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
