package handlers

import (
	"net/http"
	"strings"

	"github.com/getmentor/companyforms/internal/models"
	"github.com/getmentor/companyforms/pkg/errors"
	"github.com/gin-gonic/gin"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends a status:false envelope and records err for the request log
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, models.APIResponse{Status: false, Message: message})
}

// respondServiceError maps service errors to HTTP statuses
func respondServiceError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, errors.ErrConflict):
		respondError(c, http.StatusConflict, "Duplicate", err)
	case errors.Is(err, errors.ErrNotFound):
		respondError(c, http.StatusNotFound, notFoundMessage, err)
	case errors.Is(err, errors.ErrInvalidInput):
		message := strings.TrimSuffix(err.Error(), ": "+errors.ErrInvalidInput.Error())
		respondError(c, http.StatusBadRequest, message, err)
	default:
		respondError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
