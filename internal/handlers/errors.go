package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"employee-directory/internal/employees"

	"github.com/gin-gonic/gin"
)

func statusFor(kind error) int {
	switch {
	case errors.Is(kind, employees.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(kind, employees.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(kind, employees.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, employees.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, employees.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders policy rejections with their message. Anything else is
// logged and hidden behind a generic 500.
func writeError(c *gin.Context, err error) {
	var pe *employees.PolicyError
	if errors.As(err, &pe) {
		c.JSON(statusFor(pe.Kind), gin.H{"error": pe.Message})
		return
	}
	slog.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
}
