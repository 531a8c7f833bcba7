package handlers

import (
	"errors"
	"net/http"

	"github.com/fixtrack/fixtrack/internal/application"
	"github.com/fixtrack/fixtrack/pkg/response"
	"github.com/gin-gonic/gin"
)

// handleServiceError maps application error kinds to HTTP status codes.
// Anything unrecognized is a 500.
func handleServiceError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, application.ErrUserNotFound),
		errors.Is(err, application.ErrRoleNotFound),
		errors.Is(err, application.ErrIssueNotFound),
		errors.Is(err, application.ErrCategoryNotFound),
		errors.Is(err, application.ErrAssignmentNotFound),
		errors.Is(err, application.ErrNotificationNotFound),
		errors.Is(err, application.ErrRequestNotFound),
		errors.Is(err, application.ErrRatingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, application.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, application.ErrForbidden),
		errors.Is(err, application.ErrRegistrationClosed):
		status = http.StatusForbidden
	case errors.Is(err, application.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, application.ErrInvalidState),
		errors.Is(err, application.ErrDuplicateAssignment),
		errors.Is(err, application.ErrEmailTaken),
		errors.Is(err, application.ErrPendingApplication),
		errors.Is(err, application.ErrAlreadyInRole),
		errors.Is(err, application.ErrRoleInUse),
		errors.Is(err, application.ErrRoleNameTaken),
		errors.Is(err, application.ErrSelfDelete),
		errors.Is(err, application.ErrSelfRoleDelete),
		errors.Is(err, application.ErrRequestResolved):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}
	c.JSON(status, response.ErrorResponse{Error: err.Error()})
}
