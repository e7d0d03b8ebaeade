package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/balance"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/internal/types"
)

func RegisterMonthCloseRoutes(r *gin.RouterGroup, co Controller) {
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", co.GetMonthClose)
	}
	{
		r.OPTIONS("/run", httputil.OptionsPost)
		r.POST("/run", co.RunMonthClose)
	}
	{
		r.OPTIONS("/previous", httputil.OptionsGet)
		r.GET("/previous", co.GetPreviousMonthClose)
	}
	{
		r.OPTIONS("/current-balance", httputil.OptionsGet)
		r.GET("/current-balance", co.GetCurrentBalance)
	}
}

type MonthCloseResponse struct {
	Data *models.MonthClose `json:"data"` // The snapshot, null if there is none
}

type PreviousMonthCloseResponse struct {
	Month types.Month        `json:"month" swaggertype:"primitive,string" example:"2025-10"` // The month before the start date
	Data  *models.MonthClose `json:"data"`                                                   // The snapshot, null if there is none
}

type CurrentBalanceResponse struct {
	balance.Breakdown
	Ledger decimal.Decimal `json:"ledger" example:"40"` // Receipt ledger balance at the time of the request
}

// @Summary		Close the previous month
// @Description	Computes the receipt ledger balance at the end of the previous local month and stores it. Runs on the first local day of a month unless forced.
// @Tags			Month close
// @Produce		json
// @Success		200				{object}	balance.RunResult
// @Failure		500				{object}	TriggerError
// @Param			force			query		string	false	"Run on any day. Only the literal string 'true' enables it."
// @Param			forceMonthly	query		string	false	"Alias for force"
// @Router			/v1/month-close/run [post]
func (co Controller) RunMonthClose(c *gin.Context) {
	result, err := co.Closer.Run(c.Request.Context(), httputil.Flag(c, "force", "forceMonthly"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, TriggerError{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary		Get month close
// @Description	Returns the stored closing balance for a month
// @Tags			Month close
// @Produce		json
// @Success		200		{object}	MonthCloseResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		string	true	"Month in YYYY-MM format"
// @Router			/v1/month-close [get]
func (co Controller) GetMonthClose(c *gin.Context) {
	value := c.Query("month")
	if value == "" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errMonthNotSetInQuery.Error(),
		})
		return
	}

	month, err := types.ParseMonth(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	snapshot, err := co.Closer.Get(c.Request.Context(), month)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, MonthCloseResponse{Data: snapshot})
}

// @Summary		Get previous month close
// @Description	Returns the closing balance of the month before the month of the start date
// @Tags			Month close
// @Produce		json
// @Success		200				{object}	PreviousMonthCloseResponse
// @Failure		400				{object}	httpError
// @Failure		500				{object}	httpError
// @Param			start			query		string	true	"Local date in YYYY-MM-DD format"
// @Param			forceCompute	query		string	false	"Compute and store the snapshot if it is missing"
// @Router			/v1/month-close/previous [get]
func (co Controller) GetPreviousMonthClose(c *gin.Context) {
	value := c.Query("start")
	if value == "" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errStartNotSetInQuery.Error(),
		})
		return
	}

	start, err := co.Zone.ParseDate(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
		})
		return
	}

	month, snapshot, err := co.Closer.Previous(c.Request.Context(), start, httputil.Flag(c, "forceCompute"))
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, PreviousMonthCloseResponse{
		Month: month,
		Data:  snapshot,
	})
}

// @Summary		Current balance
// @Description	Returns the balance derived from the current state of all records and the receipt ledger balance
// @Tags			Month close
// @Produce		json
// @Success		200	{object}	CurrentBalanceResponse
// @Failure		500	{object}	httpError
// @Router			/v1/month-close/current-balance [get]
func (co Controller) GetCurrentBalance(c *gin.Context) {
	breakdown, ledger, err := co.Closer.Current(c.Request.Context())
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, CurrentBalanceResponse{
		Breakdown: breakdown,
		Ledger:    ledger,
	})
}
