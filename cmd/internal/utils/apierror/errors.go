package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

// StructuredError maps a field name to every problem found on it.
type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

func (s *StructuredError) Has(field string) bool {
	return len(s.Errors[field]) > 0
}

func (s *StructuredError) Empty() bool {
	return len(s.Errors) == 0
}

// Fields returns the fields with at least one problem, unordered.
func (s *StructuredError) Fields() []string {
	fields := make([]string, 0, len(s.Errors))
	for f, problems := range s.Errors {
		if len(problems) > 0 {
			fields = append(fields, f)
		}
	}
	return fields
}

var (
	MalformedBodyError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError     = NewSimple(404, "Resource not found")
	InvalidIDError    = NewSimple(400, "The provided ID is invalid, IDs are int64 > 0")
	LookupFailedError = NewSimple(502, "Company registry lookup failed")
)

const (
	InvalidDocumentMsg = "Value must be a CPF (000.000.000-00) or CNPJ (00.000.000/0000-00)"
	AreaSumMsg         = "Agricultural and vegetation areas must not add up to more than the total area"
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := NewStructured(http.StatusBadRequest)
	for _, fe := range ve {
		field := fieldKey(fe)

		switch fe.Tag() {
		case "required":
			problems.Add(field, "This field is required")
		case "min":
			problems.Add(field, minMessage(fe))
		case "max":
			problems.Add(field, "Value is too long, max: "+fe.Param())
		case "len":
			problems.Add(field, "Value must have exactly "+fe.Param()+" characters")
		case "gte":
			problems.Add(field, "Value must be a non-negative number")
		case "document":
			problems.Add(field, InvalidDocumentMsg)
		case "crop":
			problems.Add(field, "Unknown crop: "+fmt.Sprint(fe.Value()))
		case "nodupes":
			problems.Add(field, "Value must not repeat entries")
		case "areasum":
			problems.Add(field, AreaSumMsg)

		default:
			problems.Add(field, "Invalid value provided")
		}
	}
	return problems
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

// fieldKey drops the "[i]" suffix dive adds, so every crop problem lands
// under "crops".
func fieldKey(fe validator.FieldError) string {
	field := fe.Field()
	if i := strings.IndexByte(field, '['); i > 0 {
		return field[:i]
	}
	return field
}

func minMessage(fe validator.FieldError) string {
	if fe.Kind() == reflect.Slice {
		return "At least " + fe.Param() + " entry is required"
	}
	return "Value is too short, min: " + fe.Param()
}
