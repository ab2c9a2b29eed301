package service

import (
	"errors"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/noah-isme/skillbridge-web/pkg/errors"
)

type messager interface {
	ValidationMessages() map[string]string
}

// validate runs struct validation and reports the first failing rule as an
// ErrValidation carrying a human readable message.
func validate(v *validator.Validate, form interface{}) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, appErrors.ErrValidation.Message)
	}
	first := fieldErrs[0]
	message := first.Field() + " is invalid"
	if m, ok := form.(messager); ok {
		if text, found := m.ValidationMessages()[first.StructField()+"."+first.Tag()]; found {
			message = text
		}
	}
	return appErrors.Clone(appErrors.ErrValidation, message)
}

func invalid(message string) error {
	return appErrors.Clone(appErrors.ErrValidation, message)
}
