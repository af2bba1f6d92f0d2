package fileHandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"document-service/internal/model/document"
)

// Success envelope: {message, data, log?}.
type successBody struct {
	Message string   `json:"message"`
	Data    any      `json:"data"`
	Log     []string `json:"log,omitempty"`
}

// Error envelope: {statusCode, message, errors}.
type errorBody struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
}

func ok(c *gin.Context, status int, message string, data any, log ...string) {
	c.JSON(status, successBody{Message: message, Data: data, Log: log})
}

func fail(c *gin.Context, status int, message string, errs ...string) {
	c.JSON(status, errorBody{StatusCode: status, Message: message, Errors: errs})
}

func failFromError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, document.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, document.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, document.ErrForbidden):
		status = http.StatusForbidden
	}
	fail(c, status, err.Error())
}
