package records

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// PasswordPolicy bounds the password length, counted in characters.
type PasswordPolicy struct {
	Min int
	Max int
}

// DefaultPasswordPolicy is the 3 to 6 character rule of the registration form.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{Min: 3, Max: 6}
}

// Form fields in display order.
var formFields = []string{"nome", "email", "senha", "confirmaSenha"}

// ValidationError maps form fields to the message for their first failing
// rule. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range formFields {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, f+": "+msg)
		}
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Message returns the message for field, or "" when it passed.
func (e *ValidationError) Message(field string) string {
	return e.Fields[field]
}

// Validator checks a Form against the registration rules.
type Validator struct {
	v      *validator.Validate
	policy PasswordPolicy
}

func NewValidator(policy PasswordPolicy) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag name or nil func.
	_ = v.RegisterValidation("senhamin", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) >= policy.Min
	})
	_ = v.RegisterValidation("senhamax", func(fl validator.FieldLevel) bool {
		return utf8.RuneCountInString(fl.Field().String()) <= policy.Max
	})

	return &Validator{v: v, policy: policy}
}

// Validate returns nil or a *ValidationError.
func (v *Validator) Validate(f Form) error {
	err := v.v.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate form: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, seen := out.Fields[fe.Field()]; seen {
			continue
		}
		out.Fields[fe.Field()] = v.message(fe.Field(), fe.Tag())
	}
	return out
}

func (v *Validator) message(field, tag string) string {
	switch field + "." + tag {
	case "nome.required":
		return "Nome obrigatório"
	case "email.required":
		return "Email obrigatório"
	case "email.min":
		return "Informe no mínimo 6 digitos"
	case "email.email":
		return "E-mail informado não é valido"
	case "senha.required":
		return "Senha obrigatória"
	case "senha.senhamin":
		return fmt.Sprintf("Informe no mínimo %d digitos", v.policy.Min)
	case "senha.senhamax":
		return fmt.Sprintf("Informe no máximo %d digitos", v.policy.Max)
	case "confirmaSenha.required":
		return "Confirmação de senha obrigatória"
	case "confirmaSenha.eqfield":
		return "As senhas devem coincidir"
	}
	return fmt.Sprintf("%s inválido", field)
}
