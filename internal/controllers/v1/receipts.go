package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/internal/uuid"
	"gorm.io/gorm"
)

func RegisterReceiptRoutes(r *gin.RouterGroup, co Controller) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetReceipts)
		r.POST("", co.CreateReceipt)
	}
	{
		r.OPTIONS("/backfill-serials", httputil.OptionsPost)
		r.POST("/backfill-serials", co.BackfillReceiptSerials)
	}
	{
		r.OPTIONS("/:id", optionsReceiptDetail(co))
		r.GET("/:id", get[models.Receipt](co))
		r.DELETE("/:id", remove[models.Receipt](co))
	}
}

func optionsReceiptDetail(co Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := load[models.Receipt](co, c)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		httputil.OptionsGetDelete(c)
	}
}

// ReceiptEditable is the body for creating a receipt.
type ReceiptEditable struct {
	Kind           models.ReceiptKind `json:"kind" example:"Flat" enums:"Flat,Shop,Salary,ElectricityBill,MiscellaneousExpense,Events"`
	SubjectID      uuid.ID            `json:"subjectId" swaggertype:"string" example:"8bc8a6d4-1f4e-4b8e-9d55-2f2a30d2d0c4"`
	Slug           string             `json:"slug" example:"maintenance-a-12-2025-10"`
	Type           models.ReceiptType `json:"type" example:"Received" enums:"Paid,Received"`
	Amount         decimal.Decimal    `json:"amount" example:"3500"`
	DateOfCreation time.Time          `json:"dateOfCreation" example:"2025-10-03T09:12:44Z"` // Defaults to now
}

// ReceiptQueryFilter holds the filters for listing receipts.
type ReceiptQueryFilter struct {
	From      string `form:"from" example:"2025-10-01"`                    // First local date, inclusive
	To        string `form:"to" example:"2025-10-31"`                      // Last local date, inclusive
	Search    string `form:"q" example:"a-12"`                             // Substring of the slug
	SlugExact string `form:"slugExact" example:"maintenance-a-12-2025-10"` // Exact slug
	Type      string `form:"type" example:"Received"`
	Kind      string `form:"kind" example:"Flat"`
	ListQuery
}

type BackfillResponse struct {
	Updated int64 `json:"updated" example:"312"` // Number of receipts that were renumbered
}

// @Summary		Create receipt
// @Description	Records a payment for a flat, shop, salary, electricity bill, miscellaneous expense or event. The next serial number is assigned automatically.
// @Tags			Receipts
// @Accept			json
// @Produce		json
// @Success		201		{object}	Response[models.Receipt]
// @Failure		400		{object}	Response[models.Receipt]
// @Failure		404		{object}	Response[models.Receipt]
// @Failure		500		{object}	Response[models.Receipt]
// @Param			receipt	body		ReceiptEditable	true	"Receipt"
// @Router			/v1/receipts [post]
func (co Controller) CreateReceipt(c *gin.Context) {
	var editable ReceiptEditable
	err := httputil.BindData(c, &editable)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[models.Receipt]{Error: &s})
		return
	}

	receipt, err := editable.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[models.Receipt]{Error: &s})
		return
	}

	err = co.DB.Transaction(func(tx *gorm.DB) error {
		_, err := models.ResolveReceiptSubject(tx, receipt.Kind, receipt.SubjectID)
		if err != nil {
			return err
		}

		receipt.SerialNumber, err = models.NextValue(tx, models.ReceiptSerialCounter)
		if err != nil {
			return err
		}

		return tx.Create(&receipt).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[models.Receipt]{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, Response[models.Receipt]{Data: &receipt})
}

func (e ReceiptEditable) model() (models.Receipt, error) {
	if !e.Kind.Valid() {
		return models.Receipt{}, models.ErrReceiptKindInvalid
	}

	if !e.Type.Valid() {
		return models.Receipt{}, models.ErrReceiptTypeInvalid
	}

	if !e.Amount.IsPositive() {
		return models.Receipt{}, models.ErrAmountNotPositive
	}

	return models.Receipt{
		Kind:           e.Kind,
		SubjectID:      e.SubjectID.UUID,
		Slug:           e.Slug,
		Type:           e.Type,
		Amount:         e.Amount,
		DateOfCreation: e.DateOfCreation,
	}, nil
}

// @Summary		Get receipts
// @Description	Returns a list of receipts, newest first
// @Tags			Receipts
// @Produce		json
// @Success		200			{object}	ListResponse[models.Receipt]
// @Failure		400			{object}	ListResponse[models.Receipt]
// @Failure		500			{object}	ListResponse[models.Receipt]
// @Param			from		query		string	false	"First local date in YYYY-MM-DD format, inclusive"
// @Param			to			query		string	false	"Last local date in YYYY-MM-DD format, inclusive"
// @Param			q			query		string	false	"Search for this text in the slug"
// @Param			slugExact	query		string	false	"Filter by the exact slug"
// @Param			type		query		string	false	"Filter by type"
// @Param			kind		query		string	false	"Filter by kind"
// @Param			offset		query		uint	false	"The offset of the first receipt returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of receipts to return. Defaults to 50."
// @Router			/v1/receipts [get]
func (co Controller) GetReceipts(c *gin.Context) {
	var filter ReceiptQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ListResponse[models.Receipt]{Error: &s})
		return
	}

	q, err := co.filterReceipts(filter)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ListResponse[models.Receipt]{Error: &s})
		return
	}

	var total int64
	err = q.Session(&gorm.Session{}).Count(&total).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ListResponse[models.Receipt]{Error: &s})
		return
	}

	limit := filter.limit()
	receipts := make([]models.Receipt, 0)
	err = q.Session(&gorm.Session{}).
		Order("date_of_creation DESC, serial_number DESC").
		Offset(int(filter.Offset)).
		Limit(limit).
		Find(&receipts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ListResponse[models.Receipt]{Error: &s})
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Receipt]{
		Data: receipts,
		Pagination: &Pagination{
			Count:  len(receipts),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// filterReceipts returns a query for the receipts matching the filter.
func (co Controller) filterReceipts(filter ReceiptQueryFilter) (*gorm.DB, error) {
	q := co.DB.Model(&models.Receipt{})

	if filter.From != "" {
		from, err := co.Zone.ParseDate(filter.From)
		if err != nil {
			return nil, err
		}
		q = q.Where("date_of_creation >= ?", from.UTC())
	}

	if filter.To != "" {
		to, err := co.Zone.ParseDate(filter.To)
		if err != nil {
			return nil, err
		}
		q = q.Where("date_of_creation < ?", to.AddDate(0, 0, 1).UTC())
	}

	if filter.Search != "" {
		q = q.Where("slug LIKE ?", "%"+filter.Search+"%")
	}

	if filter.SlugExact != "" {
		q = q.Where("slug = ?", filter.SlugExact)
	}

	if filter.Type != "" {
		receiptType := models.ReceiptType(filter.Type)
		if !receiptType.Valid() {
			return nil, models.ErrReceiptTypeInvalid
		}
		q = q.Where("type = ?", receiptType)
	}

	if filter.Kind != "" {
		kind := models.ReceiptKind(filter.Kind)
		if !kind.Valid() {
			return nil, models.ErrReceiptKindInvalid
		}
		q = q.Where("kind = ?", kind)
	}

	return q, nil
}

// @Summary		Backfill receipt serials
// @Description	Renumbers all receipts from 1 in the order they were created and resets the serial counter
// @Tags			Receipts
// @Produce		json
// @Success		200	{object}	BackfillResponse
// @Failure		500	{object}	httpError
// @Router			/v1/receipts/backfill-serials [post]
func (co Controller) BackfillReceiptSerials(c *gin.Context) {
	var updated int64

	err := co.DB.Transaction(func(tx *gorm.DB) error {
		var ids []string
		err := tx.Model(&models.Receipt{}).Order("created_at ASC, id ASC").Pluck("id", &ids).Error
		if err != nil {
			return err
		}

		for i, id := range ids {
			err := tx.Model(&models.Receipt{}).Where("id = ?", id).Update("serial_number", i+1).Error
			if err != nil {
				return err
			}
		}

		updated = int64(len(ids))
		return models.SetValue(tx, models.ReceiptSerialCounter, updated)
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, BackfillResponse{Updated: updated})
}
