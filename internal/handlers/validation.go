package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	appErrors "github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/response"
	appValidator "github.com/aquaalert/aquaalert/pkg/validator"
)

// bindAndValidate binds a JSON or form payload into dest and runs struct validation rules.
// When validation fails, an error response is automatically written and false is returned.
func bindAndValidate[T any](c *gin.Context, dest *T) bool {
	if err := bindRequest(c, dest); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

// bindRequest is bindAndValidate without the response, for page handlers that
// re-render their form on failure.
func bindRequest[T any](c *gin.Context, dest *T) error {
	if err := c.ShouldBind(dest); err != nil {
		return appErrors.NewBadRequest("invalid request payload")
	}
	if err := appValidator.ValidateStruct(dest); err != nil {
		return validationError(err)
	}
	return nil
}

// validationError lists missing required fields first; any other failure is
// reported field by field.
func validationError(err error) *appErrors.AppError {
	var ve appValidator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return appErrors.NewValidation("invalid request payload")
	}

	if missing := ve.Missing(); len(missing) > 0 {
		return appErrors.NewMissingFields(missing)
	}

	messages := make([]string, 0, len(ve))
	for _, failure := range ve {
		field := failure.Field
		switch failure.Tag {
		case "dateonly":
			messages = append(messages, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(failure.Param, " ", ", ")))
		case "gt", "gte", "lte", "min", "max":
			messages = append(messages, fmt.Sprintf("%s must be %s %s", field, comparison(failure.Tag), failure.Param))
		default:
			messages = append(messages, fmt.Sprintf("%s failed validation: %s", field, failure.Tag))
		}
	}
	return appErrors.NewValidation(strings.Join(messages, "; "))
}

func comparison(tag string) string {
	switch tag {
	case "gt":
		return "greater than"
	case "gte", "min":
		return "at least"
	default:
		return "at most"
	}
}

// date parses a value that already passed the dateonly rule.
func date(value string) time.Time {
	t, _ := appValidator.ParseDate(value)
	return t
}

// optionalDate returns nil for a blank value.
func optionalDate(value string) *time.Time {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	t := date(value)
	return &t
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// setDate applies a YYYY-MM-DD value. Callers validate the text first.
func setDate(dst *time.Time, src *string) {
	if src != nil && strings.TrimSpace(*src) != "" {
		*dst = date(*src)
	}
}

// setOptionalDate applies a nullable date; an empty string clears it.
func setOptionalDate(dst **time.Time, src *string) {
	if src != nil {
		*dst = optionalDate(*src)
	}
}
