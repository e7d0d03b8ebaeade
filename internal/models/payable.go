package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type LoanStatus string

const (
	LoanPending LoanStatus = "Pending"
	LoanPaid    LoanStatus = "Paid"
)

// Loan is money lent out once.
type Loan struct {
	DefaultModel
	To      string          `json:"to" example:"Bashir Khan"`
	Purpose string          `json:"purpose" example:"Medical emergency"`
	Amount  decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"20000"`
	Status  LoanStatus      `json:"status" gorm:"default:Pending" example:"Pending" enums:"Pending,Paid"`
	Date    time.Time       `json:"date" example:"2025-03-04T00:00:00Z"`
}

func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	setCreationDate(&l.Date)
	return l.DefaultModel.BeforeCreate(tx)
}

func (Loan) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Loan](db)
}

// MiscellaneousExpense is a one-off expense.
//
// Amount is what is still to be paid.
type MiscellaneousExpense struct {
	DefaultModel
	GivenTo        string          `json:"givenTo" example:"City Plumbing"`
	LineItem       string          `json:"lineItem" example:"Water pump repair"`
	Remarks        string          `json:"remarks" example:""`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"6500"`
	PaidAmount     decimal.Decimal `json:"paidAmount" gorm:"type:DECIMAL(20,8)" example:"6500"`
	SerialNumber   *int            `json:"serialNumber" example:"20931"`
	DateOfCreation time.Time       `json:"dateOfCreation" example:"2025-03-04T00:00:00Z"`
}

func (m *MiscellaneousExpense) BeforeCreate(tx *gorm.DB) error {
	setCreationDate(&m.DateOfCreation)
	return m.DefaultModel.BeforeCreate(tx)
}

// Pay settles up to amount of what is still owed and returns the amount applied.
func (m *MiscellaneousExpense) Pay(amount decimal.Decimal) decimal.Decimal {
	applied := decimal.Min(amount, m.Amount)
	if applied.IsNegative() {
		applied = decimal.Zero
	}

	m.Amount = m.Amount.Sub(applied)
	m.PaidAmount = m.PaidAmount.Add(applied)
	return applied
}

func (MiscellaneousExpense) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[MiscellaneousExpense](db)
}

// Event is money collected once, e.g. for a celebration.
//
// Amount is what is still to be received.
type Event struct {
	DefaultModel
	GivenFrom      string          `json:"givenFrom" example:"Flat A-12"`
	Title          string          `json:"event" example:"Independence day"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"2000"`
	PaidAmount     decimal.Decimal `json:"paidAmount" gorm:"type:DECIMAL(20,8)" example:"0"`
	SerialNumber   *int            `json:"serialNumber" example:"61245"`
	DateOfCreation time.Time       `json:"dateOfCreation" example:"2025-08-01T00:00:00Z"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	setCreationDate(&e.DateOfCreation)
	return e.DefaultModel.BeforeCreate(tx)
}

// Receive books up to amount as received and returns the amount applied.
func (e *Event) Receive(amount decimal.Decimal) decimal.Decimal {
	applied := decimal.Min(amount, e.Amount)
	if applied.IsNegative() {
		applied = decimal.Zero
	}

	e.Amount = e.Amount.Sub(applied)
	e.PaidAmount = e.PaidAmount.Add(applied)
	return applied
}

func (Event) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Event](db)
}
