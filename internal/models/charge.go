package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ChargeStatus is the status of a single billing period.
type ChargeStatus string

const (
	ChargePending ChargeStatus = "Pending"
	ChargeDue     ChargeStatus = "Due"
	ChargePaid    ChargeStatus = "Paid"
)

// MonthlyCharge is one billing period of a schedule.
type MonthlyCharge struct {
	Status         ChargeStatus    `json:"status" example:"Pending" enums:"Pending,Due,Paid"`
	Amount         decimal.Decimal `json:"amount" example:"3500"`
	OccurrenceDate time.Time       `json:"occurrenceDate" example:"2025-11-01T00:00:00Z"` // First instant of the period in UTC
	PaidAmount     decimal.Decimal `json:"paidAmount" example:"0"`
}

// PaidValue is the amount realized by the period. Paid periods without an
// explicit paid amount count with their full amount.
func (c MonthlyCharge) PaidValue() decimal.Decimal {
	if c.Status != ChargePaid {
		return decimal.Zero
	}

	if c.PaidAmount.IsPositive() {
		return c.PaidAmount
	}

	return c.Amount
}

// Charges is the month array of a schedule, stored as a JSON column.
type Charges = datatypes.JSONSlice[MonthlyCharge]

// Scheduled is implemented by all resources that carry a month array.
type Scheduled interface {
	// ScheduleAmount is the amount billed for each new period
	ScheduleAmount() decimal.Decimal
	Schedule() []MonthlyCharge
	SetSchedule([]MonthlyCharge)
}

// OutstandingStatus is the status of an outstanding balance.
type OutstandingStatus string

const (
	OutstandingDue  OutstandingStatus = "Due"
	OutstandingPaid OutstandingStatus = "Paid"
)

// Outstanding is an accrued balance carried on a schedule.
type Outstanding struct {
	Amount   decimal.Decimal   `json:"amount" gorm:"type:DECIMAL(20,8)" example:"0"`
	Status   OutstandingStatus `json:"status" gorm:"default:Due" example:"Due" enums:"Due,Paid"`
	FromDate *time.Time        `json:"fromDate" example:"2025-01-01T00:00:00Z"`
	ToDate   *time.Time        `json:"toDate" example:"2025-06-30T00:00:00Z"`
}

// PaidTotal returns the realized amount of all periods.
func PaidTotal(charges []MonthlyCharge) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range charges {
		sum = sum.Add(c.PaidValue())
	}
	return sum
}
