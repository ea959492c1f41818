package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/taskboard/internal/services"
)

var (
	errInvalidRequestBody      = errors.New("invalid request body")
	errInvalidQuery            = errors.New("invalid query parameters")
	errMandatoryCookieNotFound = errors.New("mandatory cookie not found")
	errNoTaskID                = errors.New("no task id provided")
	errNoTaskStatus            = errors.New("no status provided")
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func newStatusTextError(status int) apiError {
	return newAPIError(status, http.StatusText(status))
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}

func newConflictError(message string) apiError {
	return newAPIError(http.StatusConflict, message)
}

// newAuthError maps auth service errors to API errors.
func newAuthError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrUserPasswordMismatch),
		errors.Is(err, services.ErrSessionNotFound),
		errors.Is(err, services.ErrSessionExpired):
		return newUnauthorizedError(err.Error())
	case errors.Is(err, services.ErrUserAlreadyExists):
		return newConflictError(err.Error())
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}

// newTaskError maps task service errors to API errors.
func newTaskError(err error) apiError {
	switch {
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrSomeTasksNotFound):
		return newNotFoundError(err.Error())
	case errors.Is(err, services.ErrInvalidTaskTitle),
		errors.Is(err, services.ErrInvalidTaskPriority),
		errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidTaskTimeWindow):
		return newBadRequestError(err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		return newStatusTextError(http.StatusUnauthorized)
	default:
		return newStatusTextError(http.StatusInternalServerError)
	}
}
