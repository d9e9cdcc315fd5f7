package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/customer-directory/internal/application"
	"github.com/oksasatya/customer-directory/pkg/response"
)

// writeError maps application error kinds onto HTTP statuses.
// Storage and unknown failures never expose their cause to the client.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	var appErr *application.Error
	message := err.Error()
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, message, nil)
	case errors.Is(err, application.ErrDuplicateResource):
		response.Error[any](c, http.StatusConflict, message, nil)
	case errors.Is(err, application.ErrValidation):
		response.Error[any](c, http.StatusBadRequest, message, nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrStorage):
		response.Error[any](c, http.StatusInternalServerError, "storage failure", nil)
	default:
		if logger != nil {
			logger.WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
