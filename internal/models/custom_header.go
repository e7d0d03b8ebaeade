package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HeaderType classifies custom header records as money coming in or going out.
type HeaderType string

const (
	HeaderIncoming HeaderType = "Incoming"
	HeaderExpense  HeaderType = "Expense"
)

// CustomHeader is a user defined ledger category.
type CustomHeader struct {
	DefaultModel
	HeaderName string     `json:"headerName" example:"Generator fuel"`
	HeaderType HeaderType `json:"headerType" example:"Expense" enums:"Incoming,Expense"`
	Recurring  bool       `json:"recurring" example:"true"` // Records under recurring headers are advanced every month
}

func (CustomHeader) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[CustomHeader](db)
}

// SubHeader refines a CustomHeader.
type SubHeader struct {
	DefaultModel
	HeaderID uuid.UUID     `json:"headerId" gorm:"type:uuid" example:"9a0d3c52-8d5e-4f0e-b1b0-5e0b3d0fbb11"`
	Header   *CustomHeader `json:"-"`
	Name     string        `json:"name" example:"Diesel"`
}

func (SubHeader) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[SubHeader](db)
}

// CustomHeaderRecord is a one-off or recurring entry under a CustomHeader.
type CustomHeaderRecord struct {
	DefaultModel
	HeaderID       uuid.UUID       `json:"headerId" gorm:"type:uuid" example:"9a0d3c52-8d5e-4f0e-b1b0-5e0b3d0fbb11"`
	Header         *CustomHeader   `json:"header,omitempty"`
	SubHeaderID    *uuid.UUID      `json:"subHeaderId" gorm:"type:uuid" example:"0b1e5a38-6c1f-4f0c-8a55-b77f3f8f2f61"`
	SubHeader      *SubHeader      `json:"-"`
	Purpose        string          `json:"purpose" example:"Monthly generator fuel"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"12000"`
	Months         Charges         `json:"months"`
	Outstanding    Outstanding     `json:"outstanding" gorm:"embedded;embeddedPrefix:outstanding_"`
	DateOfAddition time.Time       `json:"dateOfAddition" example:"2025-01-01T00:00:00Z"`
}

func (r *CustomHeaderRecord) BeforeCreate(tx *gorm.DB) error {
	setCreationDate(&r.DateOfAddition)
	return r.DefaultModel.BeforeCreate(tx)
}

func (r CustomHeaderRecord) ScheduleAmount() decimal.Decimal { return r.Amount }
func (r CustomHeaderRecord) Schedule() []MonthlyCharge       { return r.Months }
func (r *CustomHeaderRecord) SetSchedule(c []MonthlyCharge)  { r.Months = c }

// Realized returns the amount the record contributes to the balance.
//
// Recurring records and one-off records with a month array count their
// paid periods, one-off records without periods count their full amount.
func (r CustomHeaderRecord) Realized(recurring bool) decimal.Decimal {
	if recurring || len(r.Months) > 0 {
		return PaidTotal(r.Months)
	}
	return r.Amount
}

func (CustomHeaderRecord) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[CustomHeaderRecord](db)
}
