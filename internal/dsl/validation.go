package dsl

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Field + ": " + e.Message }

// Коды ошибок валидации
const (
	ErrRequired          = "required"
	ErrInvalidIdentifier = "invalid_identifier"
	ErrMalformedSpec     = "malformed_field"
)

// имена полей формы — они же ключи ошибок
const (
	FormProjectName = "project_name"
	FormAppName     = "app_name"
	FormEntityName  = "database_model"
	FormFieldSpec   = "fields"
)

var formNames = map[string]string{
	"ProjectName": FormProjectName,
	"AppName":     FormAppName,
	"EntityName":  FormEntityName,
	"FieldSpec":   FormFieldSpec,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("pyident", func(fl validator.FieldLevel) bool {
		return IsIdent(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name, ok := formNames[f.Name]; ok {
			return name
		}
		return f.Name
	})
	return v
}

func ferr(code, field, msg string) FieldError {
	return FieldError{Code: code, Field: field, Message: msg}
}

// Validate проверяет запрос до запуска генераторов.
// Пустой список — запрос годен.
func Validate(req Request) []FieldError {
	var errs []FieldError

	if err := validate.Struct(req); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			return []FieldError{ferr(ErrInvalidIdentifier, "", err.Error())}
		}
		for _, fe := range ves {
			name := fe.Field()
			if fe.Tag() == "required" {
				errs = append(errs, ferr(ErrRequired, name, "Field '"+name+"' is required"))
				continue
			}
			errs = append(errs, ferr(ErrInvalidIdentifier, name,
				"Field '"+name+"' must be a valid identifier (letters, digits, underscore; not starting with a digit)"))
		}
	}

	fields, err := req.Fields()
	if err != nil {
		return append(errs, ferr(ErrMalformedSpec, FormFieldSpec, err.Error()))
	}
	for _, f := range fields {
		if !IsIdent(f.Name) {
			errs = append(errs, ferr(ErrInvalidIdentifier, FormFieldSpec,
				"field name "+quote(f.Name)+" must be a valid identifier"))
		}
	}
	return errs
}

// Join склеивает ошибки в одну строку для логов и CLI.
func Join(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func quote(s string) string { return `"` + s + `"` }
