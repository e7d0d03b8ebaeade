package balance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/models"
	"gorm.io/gorm"
)

// Breakdown is the balance derived from the current state of all records.
type Breakdown struct {
	Incoming      decimal.Decimal `json:"incoming" example:"120"`
	Expense       decimal.Decimal `json:"expense" example:"80"`
	EmployeeLoans decimal.Decimal `json:"employeeLoans" example:"0"` // Sum of all outstanding employee loans
	EmployeeNet   decimal.Decimal `json:"employeeNet" example:"0"`   // Salary paid out beyond loan repayments
	Balance       decimal.Decimal `json:"balance" example:"40"`
}

// Derive computes the balance from the current state of all records.
func Derive(ctx context.Context, db *gorm.DB) (Breakdown, error) {
	db = db.WithContext(ctx)
	var b Breakdown

	var records []models.CustomHeaderRecord
	err := db.Preload("Header").Find(&records).Error
	if err != nil {
		return Breakdown{}, fmt.Errorf("loading custom header records: %w", err)
	}

	for _, r := range records {
		// Records of deleted headers do not count
		if r.Header == nil {
			continue
		}

		realized := r.Realized(r.Header.Recurring)
		switch r.Header.HeaderType {
		case models.HeaderIncoming:
			b.Incoming = b.Incoming.Add(realized)
		case models.HeaderExpense:
			b.Expense = b.Expense.Add(realized)
		}
	}

	maintenance, err := paidMonths[models.Maintenance](db)
	if err != nil {
		return Breakdown{}, err
	}

	shopMaintenance, err := paidMonths[models.ShopMaintenance](db)
	if err != nil {
		return Breakdown{}, err
	}

	salaries, err := paidMonths[models.Salary](db)
	if err != nil {
		return Breakdown{}, err
	}

	b.Incoming = b.Incoming.Add(maintenance).Add(shopMaintenance)
	b.Expense = b.Expense.Add(salaries)

	var flats []models.Flat
	if err := db.Find(&flats).Error; err != nil {
		return Breakdown{}, fmt.Errorf("loading flats: %w", err)
	}
	for _, f := range flats {
		b.Incoming = b.Incoming.Add(received(f.MaintenanceRecord))
	}

	var shops []models.Shop
	if err := db.Find(&shops).Error; err != nil {
		return Breakdown{}, fmt.Errorf("loading shops: %w", err)
	}
	for _, s := range shops {
		b.Incoming = b.Incoming.Add(received(s.MaintenanceRecord))
	}

	events, err := sum(db, &models.Event{}, "paid_amount", nil)
	if err != nil {
		return Breakdown{}, err
	}
	b.Incoming = b.Incoming.Add(events)

	loans, err := sum(db, &models.Loan{}, "amount", map[string]any{"status": models.LoanPaid})
	if err != nil {
		return Breakdown{}, err
	}

	bills, err := sum(db, &models.ElectricityBill{}, "bill_paid_amount", nil)
	if err != nil {
		return Breakdown{}, err
	}

	misc, err := sum(db, &models.MiscellaneousExpense{}, "paid_amount", nil)
	if err != nil {
		return Breakdown{}, err
	}
	b.Expense = b.Expense.Add(loans).Add(bills).Add(misc)

	var employees []models.Employee
	if err := db.Find(&employees).Error; err != nil {
		return Breakdown{}, fmt.Errorf("loading employees: %w", err)
	}

	paid, loanPaid := decimal.Zero, decimal.Zero
	for _, e := range employees {
		b.EmployeeLoans = b.EmployeeLoans.Add(e.SalaryRecord.LoanAmount)
		paid = paid.Add(e.SalaryRecord.PaidAmount)
		loanPaid = loanPaid.Add(e.SalaryRecord.LoanPaidAmount)
	}
	b.EmployeeNet = decimal.Max(decimal.Zero, paid.Sub(loanPaid))

	b.Balance = b.Incoming.Sub(b.Expense).Sub(b.EmployeeLoans).Sub(b.EmployeeNet)
	return b, nil
}

func received(r models.MaintenanceRecord) decimal.Decimal {
	return r.PaidAmount.Add(r.AdvanceMaintenance)
}

// paidMonths sums the paid periods of all schedules of type M.
func paidMonths[M any, PM interface {
	*M
	models.Scheduled
}](db *gorm.DB) (decimal.Decimal, error) {
	var docs []M
	err := db.Find(&docs).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("loading %T: %w", docs, err)
	}

	total := decimal.Zero
	for i := range docs {
		total = total.Add(models.PaidTotal(PM(&docs[i]).Schedule()))
	}
	return total, nil
}

// sum adds up a decimal column of all rows of model matching conds.
func sum(db *gorm.DB, model any, column string, conds map[string]any) (decimal.Decimal, error) {
	q := db.Model(model)
	if conds != nil {
		q = q.Where(conds)
	}

	var values []decimal.NullDecimal
	err := q.Pluck(column, &values).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s of %T: %w", column, model, err)
	}

	return total(values), nil
}

// total sums values, treating NULL as zero.
func total(values []decimal.NullDecimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		if v.Valid {
			sum = sum.Add(v.Decimal)
		}
	}
	return sum
}
