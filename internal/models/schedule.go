package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Maintenance is the maintenance schedule of a flat.
type Maintenance struct {
	DefaultModel
	FlatID            uuid.UUID       `json:"flatId" gorm:"type:uuid" example:"8bc8a6d4-1f4e-4b8e-9d55-2f2a30d2d0c4"`
	Flat              *Flat           `json:"-"`
	MaintenanceAmount decimal.Decimal `json:"maintenanceAmount" gorm:"type:DECIMAL(20,8)" example:"3500"`
	Months            Charges         `json:"months"`
	Outstanding       Outstanding     `json:"outstanding" gorm:"embedded;embeddedPrefix:outstanding_"`
}

func (m Maintenance) ScheduleAmount() decimal.Decimal { return m.MaintenanceAmount }
func (m Maintenance) Schedule() []MonthlyCharge       { return m.Months }
func (m *Maintenance) SetSchedule(c []MonthlyCharge)  { m.Months = c }

func (Maintenance) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Maintenance](db)
}

// ShopMaintenance is the maintenance schedule of a shop.
type ShopMaintenance struct {
	DefaultModel
	ShopID            uuid.UUID       `json:"shopId" gorm:"type:uuid" example:"1e1f3f0a-77c3-4d8b-a8d5-6b4bd7c6d1a2"`
	Shop              *Shop           `json:"-"`
	MaintenanceAmount decimal.Decimal `json:"maintenanceAmount" gorm:"type:DECIMAL(20,8)" example:"5000"`
	Months            Charges         `json:"months"`
	Outstanding       Outstanding     `json:"outstanding" gorm:"embedded;embeddedPrefix:outstanding_"`
}

func (m ShopMaintenance) ScheduleAmount() decimal.Decimal { return m.MaintenanceAmount }
func (m ShopMaintenance) Schedule() []MonthlyCharge       { return m.Months }
func (m *ShopMaintenance) SetSchedule(c []MonthlyCharge)  { m.Months = c }

func (ShopMaintenance) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[ShopMaintenance](db)
}

// Salary is the salary schedule of an employee.
type Salary struct {
	DefaultModel
	EmployeeID     uuid.UUID       `json:"employeeId" gorm:"type:uuid" example:"3f5b8f0e-5d7c-4b1a-9a6e-0c2d4e6f8a1b"`
	Employee       *Employee       `json:"-"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"45000"`
	DateOfCreation time.Time       `json:"dateOfCreation" example:"2025-01-01T00:00:00Z"`
	Months         Charges         `json:"months"`
}

func (s *Salary) BeforeCreate(tx *gorm.DB) error {
	setCreationDate(&s.DateOfCreation)
	return s.DefaultModel.BeforeCreate(tx)
}

func (s Salary) ScheduleAmount() decimal.Decimal { return s.Amount }
func (s Salary) Schedule() []MonthlyCharge       { return s.Months }
func (s *Salary) SetSchedule(c []MonthlyCharge)  { s.Months = c }

func (Salary) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Salary](db)
}
