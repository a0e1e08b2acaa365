package httputil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/goals-wallet/backend/internal/models"
	"github.com/goals-wallet/backend/internal/store"
	"github.com/rs/zerolog/log"
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the amount must be larger than zero"`
}

// Status returns the HTTP status for an error returned by the ledger.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// ErrorMessage returns the message shown to the client for err.
//
// Server side errors are logged with the request id and replaced with a generic message.
func ErrorMessage(c *gin.Context, err error) string {
	if Status(err) < http.StatusInternalServerError {
		return err.Error()
	}

	log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
	return fmt.Sprintf("%s, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", models.ErrGeneral, requestid.Get(c))
}

// NewError writes err as HTTPError with the matching status.
func NewError(c *gin.Context, err error) {
	c.JSON(Status(err), HTTPError{
		Error: ErrorMessage(c, err),
	})
}
