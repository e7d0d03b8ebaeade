package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalaryRecord is the payroll account of an employee.
//
// An outstanding loan is worked off against the monthly salary before
// anything accrues as payable.
type SalaryRecord struct {
	MonthlySalary  decimal.Decimal `json:"monthlySalary" gorm:"type:DECIMAL(20,8)" example:"45000"`
	LoanAmount     decimal.Decimal `json:"loanAmount" gorm:"type:DECIMAL(20,8)" example:"0"`
	LoanPaidAmount decimal.Decimal `json:"loanPaidAmount" gorm:"type:DECIMAL(20,8)" example:"0"`
	MonthlyPayable decimal.Decimal `json:"monthlyPayable" gorm:"type:DECIMAL(20,8)" example:"0"`
	PaidAmount     decimal.Decimal `json:"paidAmount" gorm:"type:DECIMAL(20,8)" example:"0"`
}

type Employee struct {
	DefaultModel
	EmployeeName  string       `json:"employeeName" example:"Bashir Khan"`
	EmployeePhone string       `json:"employeePhone" example:"03111234567"`
	EmployeeCNIC  string       `json:"employeeCnic" example:"35202-1234567-1"`
	SerialNumber  *int         `json:"serialNumber" example:"52018"`
	DateOfJoining time.Time    `json:"dateOfJoining" example:"2024-03-01T00:00:00Z"`
	SalaryRecord  SalaryRecord `json:"salaryRecord" gorm:"embedded;embeddedPrefix:salary_"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	setCreationDate(&e.DateOfJoining)
	return e.DefaultModel.BeforeCreate(tx)
}

func (Employee) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Employee](db)
}
