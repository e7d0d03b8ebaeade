package v1

import (
	"errors"
	"net/http"

	"github.com/towerledger/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errMonthNotSetInQuery = errors.New("the month query parameter must be set")
	errStartNotSetInQuery = errors.New("the start query parameter must be set")
	errNoCollectionMatch  = errors.New("the model pattern does not match any collection")
	errSerialsExhausted   = errors.New("there are no free serial numbers left")
)
