package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/towerledger/backend/internal/httputil"
)

func RegisterAutomationRoutes(r *gin.RouterGroup, co Controller) {
	{
		r.OPTIONS("/due-months", httputil.OptionsGetPost)
		r.GET("/due-months", co.DueMonths)
		r.POST("/due-months", co.DueMonths)
	}
	{
		r.OPTIONS("/monthly-rollover", httputil.OptionsGetPost)
		r.GET("/monthly-rollover", co.MonthlyRollover)
		r.POST("/monthly-rollover", co.MonthlyRollover)
	}
}

// @Summary		Advance month arrays
// @Description	Marks pending periods before the next period as due and appends the next period to every schedule that lacks it. Idempotent.
// @Tags			Automation
// @Produce		json
// @Success		200	{object}	billing.DueMonthsReport
// @Failure		500	{object}	billing.DueMonthsReport
// @Router			/v1/auto/due-months [post]
func (co Controller) DueMonths(c *gin.Context) {
	report := co.Roller.DueMonths(c.Request.Context())

	code := http.StatusOK
	if !report.Success {
		code = http.StatusInternalServerError
	}

	c.JSON(code, report)
}

// @Summary		Monthly rollover
// @Description	Consumes advances for flats, shops and employees on the first local day of a month and accrues electricity bills on their anniversary.
// @Tags			Automation
// @Produce		json
// @Success		200				{object}	billing.RolloverReport
// @Failure		500				{object}	billing.RolloverReport
// @Param			force			query		string	false	"Run the monthly sections on any day. Only the literal string 'true' enables it."
// @Param			forceMonthly	query		string	false	"Alias for force"
// @Router			/v1/auto/monthly-rollover [post]
func (co Controller) MonthlyRollover(c *gin.Context) {
	report := co.Roller.MonthlyRollover(c.Request.Context(), httputil.Flag(c, "force", "forceMonthly"))

	code := http.StatusOK
	if !report.Success {
		code = http.StatusInternalServerError
	}

	c.JSON(code, report)
}
