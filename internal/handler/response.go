package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"taskman/internal/middleware"
)

// FieldError describes a single violated field in a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func respondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"status":  "error",
		"message": message,
	})
}

// respondBindingError maps a gin binding failure to the error envelope,
// listing the violated fields when the failure came from validator tags.
func respondBindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fe.Field(),
			Message: "failed on the '" + fe.Tag() + "' rule",
		})
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Validation error",
		"errors":  fields,
	})
}

// currentUserID pulls the authenticated user id set by the auth middleware.
// A missing or empty id means the middleware chain is misconfigured.
func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.UserIDKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, "Unauthorized - User ID not found")
		return "", false
	}

	userID, ok := v.(string)
	if !ok || userID == "" {
		respondError(c, http.StatusUnauthorized, "Unauthorized - User ID not found")
		return "", false
	}
	return userID, true
}
