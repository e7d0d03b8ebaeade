package v1

import (
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/uuid"
)

type URIID struct {
	ID uuid.ID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

// ListQuery holds the pagination parameters of list endpoints.
type ListQuery struct {
	Offset uint `form:"offset" example:"0"`
	Limit  *int `form:"limit" example:"50"`
}

// limit returns the limit to apply, defaulting to 50.
func (q ListQuery) limit() int {
	if q.Limit == nil {
		return 50
	}
	return *q.Limit
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}

// Response is the body of responses for a single resource.
type Response[T any] struct {
	Data  *T      `json:"data"`                                                          // Data for the resource
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// ListResponse is the body of responses for a list of resources.
type ListResponse[T any] struct {
	Data       []T         `json:"data"`                                                // List of resources
	Error      *string     `json:"error" example:"the limit parameter is not a number"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                          // Pagination information
}

// AmountBody is the body of payment requests.
type AmountBody struct {
	Amount decimal.Decimal `json:"amount" example:"3500"`
}

// TriggerError is the body of a trigger that failed entirely.
type TriggerError struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"an error occurred on the server during your request"`
}
