package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError renders a transport error built by an upstream mapper.
// A nil or status-less error still produces a well-formed 500 envelope.
func RespondAPIError(c *gin.Context, e *apierr.Error) {
	if e == nil {
		RespondError(c, http.StatusInternalServerError, "internal", nil)
		return
	}
	status := e.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	RespondError(c, status, e.Code, e)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
