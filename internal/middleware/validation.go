package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
)

// HandleValidationError converts a request binding failure into the standard
// error response, with per-field messages when the failure came from
// struct tag validation.
func HandleValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request body")))
		return
	}

	fieldMessages := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldMessages[jsonFieldName(fieldErr.Field())] = describeFieldError(fieldErr)
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Request validation failed").
		WithDetails(fieldMessages)
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func describeFieldError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fieldErr.Kind().String() == "string" {
			return fmt.Sprintf("must be at least %s characters long", fieldErr.Param())
		}
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fieldErr.Param())
	case "datetime":
		return fmt.Sprintf("must match the format %s", fieldErr.Param())
	default:
		return fmt.Sprintf("failed validation rule %q", fieldErr.Tag())
	}
}
