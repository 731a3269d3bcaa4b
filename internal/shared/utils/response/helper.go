package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketly/internal/shared/apperrors"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// Error maps an error to its HTTP status via apperrors and hides internal
// error details from clients.
func Error(c *gin.Context, err error) {
	code := apperrors.HTTPStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal server error"
	}
	RespondJSON(c, "error", code, msg, nil, nil)
}
