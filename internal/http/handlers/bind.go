package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/geocoder89/eventnudges/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// Bind decodes the body according to its Content-Type (JSON, urlencoded or
// multipart) and runs the binding rules. On failure it writes the 400.
func Bind(ctx *gin.Context, out any) bool {
	err := ctx.ShouldBind(out)

	if err != nil {
		RespondBadRequest(ctx, "Invalid data", err, parseBindError(err, out))
		return false
	}

	return true
}

// BindOptional is Bind for bodies that may be absent: an empty body leaves
// out untouched instead of failing with EOF.
func BindOptional(ctx *gin.Context, out any) bool {
	err := ctx.ShouldBind(out)

	if err != nil && !errors.Is(err, io.EOF) {
		RespondBadRequest(ctx, "Invalid data", err, parseBindError(err, out))
		return false
	}

	return true
}

// RespondDomainError answers a factory error: field problems become a 400
// with details, anything else a plain 400.
func RespondDomainError(ctx *gin.Context, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		RespondBadRequest(ctx, "Invalid data", err, gin.H{
			"fields": []FieldError{{Field: vErr.Field, Rule: "format", Message: vErr.Reason}},
		})
		return
	}

	RespondInvalidData(ctx, err)
}

func parseBindError(err error, out any) any {
	rootType := baseStructType(out)

	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		fields := make([]FieldError, 0, len(validatorError))

		for _, fieldError := range validatorError {
			rule := fieldError.Tag()
			param := fieldError.Param()

			fields = append(fields, FieldError{
				Field:   wireName(rootType, fieldError.StructField()),
				Rule:    rule,
				Param:   param,
				Message: validationMessage(rule, param),
			})
		}
		return gin.H{"fields": fields}
	}

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) {
		return gin.H{"json": "invalid_json_syntax"}
	}

	var unmatchedTypeError *json.UnmarshalTypeError

	if errors.As(err, &unmatchedTypeError) {
		field := strings.TrimSpace(unmatchedTypeError.Field)

		return gin.H{
			"json": "invalid_json_type",
			"fields": []FieldError{
				{
					Field:   field,
					Rule:    "type",
					Message: fmt.Sprintf("must be of type %s", unmatchedTypeError.Type.String()),
				},
			},
		}
	}

	return nil
}

func baseStructType(v any) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

// wireName maps a Go field name to the name clients send: the json tag,
// else the form tag, else the Go name.
func wireName(rootType reflect.Type, goName string) string {
	if rootType == nil {
		return goName
	}

	sf, ok := rootType.FieldByName(goName)
	if !ok {
		return goName
	}

	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(sf.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return goName
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
