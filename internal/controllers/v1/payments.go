package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
	"gorm.io/gorm"
)

// bindAmount binds the amount of a payment request. It must be positive.
func bindAmount(c *gin.Context) (decimal.Decimal, error) {
	var body AmountBody
	err := httputil.BindData(c, &body)
	if err != nil {
		return decimal.Zero, err
	}

	if !body.Amount.IsPositive() {
		return decimal.Zero, models.ErrAmountNotPositive
	}

	return body.Amount, nil
}

// settle applies a payment to the resource identified by the id URI parameter
// and writes the given columns. The resource is reloaded inside the
// transaction so that concurrent payments do not overwrite each other.
func settle[M any, PM resource[M]](co Controller, c *gin.Context, apply func(PM, decimal.Decimal), columns ...string) {
	resource, err := load[M](co, c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[M]{Error: &s})
		return
	}

	amount, err := bindAmount(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[M]{Error: &s})
		return
	}

	id := PM(&resource).Default().ID
	err = co.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&resource, "id = ?", id).Error
		if err != nil {
			return err
		}

		apply(PM(&resource), amount)
		return tx.Model(PM(&resource)).Select(columns).Updates(PM(&resource)).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[M]{Error: &s})
		return
	}

	c.JSON(http.StatusOK, Response[M]{Data: &resource})
}

// @Summary		Pay electricity bill
// @Description	Pays up to the given amount of the bill's payable. The amount actually applied is capped at the payable.
// @Tags			Electricity bills
// @Accept			json
// @Produce		json
// @Success		200		{object}	Response[models.ElectricityBill]
// @Failure		400		{object}	Response[models.ElectricityBill]
// @Failure		404		{object}	Response[models.ElectricityBill]
// @Failure		500		{object}	Response[models.ElectricityBill]
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		AmountBody	true	"Payment"
// @Router			/v1/electricity-bills/{id}/pay [post]
func (co Controller) PayElectricityBill(c *gin.Context) {
	settle(co, c, func(b *models.ElectricityBill, amount decimal.Decimal) {
		b.Pay(amount)
	}, "bill_monthly_payable", "bill_paid_amount")
}

// @Summary		Pay miscellaneous expense
// @Description	Pays up to the given amount of what is still owed on the expense
// @Tags			Miscellaneous expenses
// @Accept			json
// @Produce		json
// @Success		200		{object}	Response[models.MiscellaneousExpense]
// @Failure		400		{object}	Response[models.MiscellaneousExpense]
// @Failure		404		{object}	Response[models.MiscellaneousExpense]
// @Failure		500		{object}	Response[models.MiscellaneousExpense]
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		AmountBody	true	"Payment"
// @Router			/v1/miscellaneous-expenses/{id}/pay [post]
func (co Controller) PayMiscellaneousExpense(c *gin.Context) {
	settle(co, c, func(m *models.MiscellaneousExpense, amount decimal.Decimal) {
		m.Pay(amount)
	}, "amount", "paid_amount")
}

// @Summary		Receive event contribution
// @Description	Receives up to the given amount of the event's remaining amount
// @Tags			Events
// @Accept			json
// @Produce		json
// @Success		200		{object}	Response[models.Event]
// @Failure		400		{object}	Response[models.Event]
// @Failure		404		{object}	Response[models.Event]
// @Failure		500		{object}	Response[models.Event]
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			payment	body		AmountBody	true	"Payment"
// @Router			/v1/events/{id}/receive [post]
func (co Controller) ReceiveEvent(c *gin.Context) {
	settle(co, c, func(e *models.Event, amount decimal.Decimal) {
		e.Receive(amount)
	}, "amount", "paid_amount")
}
