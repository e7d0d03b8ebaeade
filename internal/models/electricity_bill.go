package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillRecord is the account of an electricity connection.
type BillRecord struct {
	MonthlyBill    decimal.Decimal `json:"monthlyBill" gorm:"type:DECIMAL(20,8)" example:"8000"`
	MonthlyPayable decimal.Decimal `json:"monthlyPayable" gorm:"type:DECIMAL(20,8)" example:"0"`
	PaidAmount     decimal.Decimal `json:"paidAmount" gorm:"type:DECIMAL(20,8)" example:"0"`
	LastAppliedAt  *time.Time      `json:"lastAppliedAt" example:"2025-10-19T04:00:00Z"` // Last time the monthly bill was accrued
}

// ElectricityBill accrues its monthly bill on the anniversary of its creation.
type ElectricityBill struct {
	DefaultModel
	ConsumerNumber string     `json:"consumerNumber" example:"04117123456"`
	SerialNumber   *int       `json:"serialNumber" example:"77120"`
	DateOfCreation time.Time  `json:"dateOfCreation" example:"2025-01-19T00:00:00Z"`
	BillRecord     BillRecord `json:"billRecord" gorm:"embedded;embeddedPrefix:bill_"`
}

func (e *ElectricityBill) BeforeCreate(tx *gorm.DB) error {
	setCreationDate(&e.DateOfCreation)
	return e.DefaultModel.BeforeCreate(tx)
}

// Pay settles up to amount of the payable and returns the amount applied.
func (e *ElectricityBill) Pay(amount decimal.Decimal) decimal.Decimal {
	applied := decimal.Min(amount, e.BillRecord.MonthlyPayable)
	if applied.IsNegative() {
		applied = decimal.Zero
	}

	e.BillRecord.MonthlyPayable = e.BillRecord.MonthlyPayable.Sub(applied)
	e.BillRecord.PaidAmount = e.BillRecord.PaidAmount.Add(applied)
	return applied
}

func (ElectricityBill) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[ElectricityBill](db)
}
