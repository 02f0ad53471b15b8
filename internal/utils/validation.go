package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"office-hours-server/internal/scheduling"
)

var registerOnce sync.Once

// RegisterValidators adds the calendardate and clock tags to gin's validator
// and makes field errors report JSON names.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		if err = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
			_, perr := scheduling.ParseDate(fl.Field().String())
			return perr == nil
		}); err != nil {
			return
		}
		err = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			_, perr := scheduling.ParseClock(fl.Field().String())
			return perr == nil
		})
	})
	return err
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// FieldErrors converts validator errors into per-field messages.
func FieldErrors(err error) []scheduling.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]scheduling.FieldError, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, scheduling.FieldError{
			Path:    []string{e.Field()},
			Message: fieldMessage(e),
		})
	}
	return fields
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "uuid":
		return field + " must be a valid identifier"
	case "calendardate":
		return field + " must be a valid date in YYYY-MM-DD format"
	case "clock":
		return field + " must be a valid time in HH:mm format"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
	default:
		return field + " is invalid"
	}
}

// BindAndValidate binds the request body to a struct and validates it.
// If validation fails, it sends a BadRequest response and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	return respondBindError(c, c.ShouldBindJSON(obj))
}

// BindQueryAndValidate is BindAndValidate for query parameters.
func BindQueryAndValidate(c *gin.Context, obj interface{}) bool {
	return respondBindError(c, c.ShouldBindQuery(obj))
}

func respondBindError(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	if fields := FieldErrors(err); len(fields) > 0 {
		ValidationFailed(c, fields)
		return false
	}
	BadRequest(c, "Invalid request payload")
	return false
}
