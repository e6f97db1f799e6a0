// Package validation adapts go-playground/validator to echo's Validator interface.
package validation

import (
	"github.com/go-playground/validator/v10"
)

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return NewWith(validator.New())
}

// NewWith wraps an existing validator so echo and the controllers
// share the same instance.
func NewWith(v *validator.Validate) *Validator {
	return &Validator{v: v}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
