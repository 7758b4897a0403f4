package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// messages overrides the generated text for specific struct.field.rule keys.
var messages = map[string]string{
	"name.required":    "Name is required",
	"name.max":         "Name cannot exceed 100 characters",
	"email.required":   "Email is required",
	"email.email":      "Please provide a valid email address",
	"subject.max":      "Subject cannot exceed 200 characters",
	"message.required": "Message is required",
	"message.max":      "Message cannot exceed 2000 characters",

	"Project.title.required":        "Project title is required",
	"Project.description.required":  "Project description is required",
	"Skill.name.required":           "Skill name is required",
	"Journey.title.required":        "Title is required",
	"Journey.organization.required": "Organization is required",
}

func message(fe validator.FieldError) string {
	// Namespace is "Type.field" with JSON names.
	ns := fe.Namespace()
	typeName, _, _ := strings.Cut(ns, ".")
	if msg, ok := messages[typeName+"."+fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if strings.HasPrefix(typeName, "Contact") {
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return msg
		}
	}
	return generic(fe)
}

func generic(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		allowed := strings.Join(strings.Fields(fe.Param()), ", ")
		return fmt.Sprintf("'%v' is not a valid %s (allowed: %s)", fe.Value(), field, allowed)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s cannot exceed %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "email":
		return "Please provide a valid email address"
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
