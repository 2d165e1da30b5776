package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/expensio/expensio/internal/server/http/dto"
	"github.com/expensio/expensio/internal/server/http/middleware"
)

// CurrentUserID extracts the authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentUserEmail extracts the authenticated user email from context.
func CurrentUserEmail(c *gin.Context) string {
	val, ok := c.Get(middleware.UserEmailContextKey)
	if !ok {
		return ""
	}
	email, _ := val.(string)
	return email
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, dto.ErrorResponse{Message: message})
}

// writeBindingError turns validator failures into field-level messages and
// everything else into a generic bad request response.
func writeBindingError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		messages := make([]string, 0, len(validationErrs))
		for _, fieldErr := range validationErrs {
			messages = append(messages, fieldMessage(fieldErr))
		}
		c.JSON(400, dto.ErrorResponse{Message: messages})
		return
	}
	writeError(c, 400, "invalid request payload")
}

func fieldMessage(fieldErr validator.FieldError) string {
	field := strings.ToLower(fieldErr.Field())
	switch fieldErr.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fieldErr.Param())
	default:
		return field + " is invalid"
	}
}
