package httputil

import (
	"fmt"

	"github.com/goals-wallet/backend/internal/models"
)

var (
	ErrInvalidBody      = fmt.Errorf("%w: the body of your request contains invalid or un-parseable data. Please check and try again", models.ErrValidation)
	ErrRequestBodyEmpty = fmt.Errorf("%w: the request body must not be empty", models.ErrValidation)
	ErrInvalidID        = fmt.Errorf("%w: the specified resource ID is not a valid number", models.ErrValidation)
)
