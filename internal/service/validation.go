package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

var validate = validator.New()

// rule pairs a request field with its validator tag string.
type rule struct {
	field string
	value string
	tags  string
}

// checkRules validates each field in order and records one message per
// failing tag, so callers see every problem of a request at once.
func checkRules(fields *apperrors.FieldErrors, rules ...rule) {
	for _, r := range rules {
		err := validate.Var(r.value, r.tags)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			fields.Add(r.field, err.Error())
			continue
		}
		for _, fe := range verrs {
			fields.Add(r.field, fieldMessage(r.field, fe.Tag(), fe.Param()))
		}
	}
}

func fieldMessage(field, tag, param string) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", label, param)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", label, param)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", label)
	case "numeric", "number":
		return fmt.Sprintf("The %s field must be a number.", label)
	}
	return fmt.Sprintf("The %s field is invalid.", label)
}

func takenMessage(field string) string {
	return fmt.Sprintf("The %s has already been taken.", strings.ReplaceAll(field, "_", " "))
}

func requiredMessage(field string) string {
	return fieldMessage(field, "required", "")
}

func invalidSelectionMessage(field string) string {
	return fmt.Sprintf("The selected %s is invalid.", strings.ReplaceAll(field, "_", " "))
}

func minMessage(field, min string) string {
	return fmt.Sprintf("The %s field must be at least %s.", strings.ReplaceAll(field, "_", " "), min)
}
