// Package billing advances time based billing state: monthly schedules,
// advance and outstanding balances, and electricity payables.
package billing

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/internal/types"
	"gorm.io/gorm"
)

const (
	passDueMonths   = "due-months"
	passMonthly     = "monthly-section"
	passElectricity = "electricity"
)

// Roller runs the billing passes against a database.
type Roller struct {
	DB   *gorm.DB
	Zone types.Zone

	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time
}

// NewRoller returns a Roller using the wall clock.
func NewRoller(db *gorm.DB, zone types.Zone) *Roller {
	return &Roller{DB: db, Zone: zone, Now: time.Now}
}

func (r *Roller) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// PassResult is the outcome of the due-months pass for one collection.
type PassResult struct {
	Collection string `json:"collection" example:"maintenance"`
	Success    bool   `json:"success" example:"true"`
	Error      string `json:"error,omitempty" example:""`
	Matched    int    `json:"matched" example:"12"`  // Documents with a non-empty month array
	Modified   int    `json:"modified" example:"12"` // Documents whose month array changed
	Added      int    `json:"added" example:"12"`    // Periods appended
}

// DueMonthsReport is the outcome of the due-months pass.
type DueMonthsReport struct {
	Success             bool       `json:"success" example:"true"`
	NextPeriodStart     time.Time  `json:"nextPeriodStart" example:"2025-12-01T00:00:00Z"`
	Maintenance         PassResult `json:"maintenance"`
	ShopMaintenance     PassResult `json:"shopMaintenance"`
	Salaries            PassResult `json:"salaries"`
	CustomHeaderRecords PassResult `json:"customHeaderRecords"`
}

// SectionResult is the outcome of a monthly section or electricity accrual for one collection.
type SectionResult struct {
	Success bool   `json:"success" example:"true"`
	Error   string `json:"error,omitempty" example:""`
	Updated int    `json:"updated" example:"3"`
}

// RolloverReport is the outcome of a monthly rollover.
type RolloverReport struct {
	Success            bool          `json:"success" example:"true"`
	RanMonthlySections bool          `json:"ranMonthlySections" example:"true"`
	RunAt              time.Time     `json:"runAt" example:"2025-11-01T00:05:00Z"`
	Flats              SectionResult `json:"flats"`
	Shops              SectionResult `json:"shops"`
	Employees          SectionResult `json:"employees"`
	ElectricityBills   SectionResult `json:"electricityBills"`
}

// DueMonths advances the month arrays of all schedules to the next period.
//
// The collections are processed concurrently and independently. A failing
// collection is reported in its result and does not affect the others.
func (r *Roller) DueMonths(ctx context.Context) DueMonthsReport {
	next := NextPeriodStart(r.now())
	report := DueMonthsReport{NextPeriodStart: next}

	var wg sync.WaitGroup
	run := func(result *PassResult, pass func() PassResult) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			*result = pass()
		}()
	}

	run(&report.Maintenance, func() PassResult {
		return dueMonths[models.Maintenance](ctx, r.DB, "maintenance", next, nil)
	})
	run(&report.ShopMaintenance, func() PassResult {
		return dueMonths[models.ShopMaintenance](ctx, r.DB, "shopMaintenance", next, nil)
	})
	run(&report.Salaries, func() PassResult {
		return dueMonths[models.Salary](ctx, r.DB, "salaries", next, nil)
	})
	run(&report.CustomHeaderRecords, func() PassResult {
		return dueMonths[models.CustomHeaderRecord](ctx, r.DB, "customHeaderRecords", next, recurringRecords)
	})

	wg.Wait()

	report.Success = report.Maintenance.Success &&
		report.ShopMaintenance.Success &&
		report.Salaries.Success &&
		report.CustomHeaderRecords.Success

	return report
}

// recurringRecords limits custom header records to those under recurring headers.
func recurringRecords(db *gorm.DB) *gorm.DB {
	recurring := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.CustomHeader{}).
		Select("id").
		Where("recurring = ?", true)

	return db.Where("header_id IN (?)", recurring)
}

type scheduled[M any] interface {
	*M
	models.Scheduled
}

// dueMonths runs the due-months pass for one collection.
func dueMonths[M any, PM scheduled[M]](ctx context.Context, db *gorm.DB, collection string, next time.Time, scope func(*gorm.DB) *gorm.DB) (result PassResult) {
	result.Collection = collection
	defer func() {
		observe(passDueMonths, collection, result.Success, result.Modified)
		logResult(passDueMonths, collection, result.Success, result.Error).
			Int("matched", result.Matched).
			Int("modified", result.Modified).
			Int("added", result.Added).
			Msg("billing")
	}()

	q := db.WithContext(ctx)
	if scope != nil {
		q = scope(q)
	}

	var docs []M
	err := q.Find(&docs).Error
	if err != nil {
		result.Error = err.Error()
		return result
	}

	var changed []PM
	added := 0
	for i := range docs {
		doc := PM(&docs[i])

		// Documents without a month array have never been scheduled
		charges := doc.Schedule()
		if len(charges) == 0 {
			continue
		}
		result.Matched++

		updated, appended, modified := AdvanceSchedule(charges, next, doc.ScheduleAmount())
		if !modified {
			continue
		}

		doc.SetSchedule(updated)
		changed = append(changed, doc)
		if appended {
			added++
		}
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, doc := range changed {
			err := tx.Model(doc).Update("months", models.Charges(doc.Schedule())).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Modified = len(changed)
	result.Added = added
	result.Success = true
	return result
}

// MonthlyRollover runs the monthly sections and the electricity accrual.
//
// The monthly sections for flats, shops and employees only run on the first
// local day of a month or when forced. They are not idempotent, running them
// twice in the same month bills twice.
func (r *Roller) MonthlyRollover(ctx context.Context, force bool) RolloverReport {
	now := r.now()
	report := RolloverReport{
		RunAt:              now.UTC(),
		RanMonthlySections: force || r.Zone.IsFirstDay(now),
		Flats:              SectionResult{Success: true},
		Shops:              SectionResult{Success: true},
		Employees:          SectionResult{Success: true},
	}

	if report.RanMonthlySections {
		report.Flats = section(ctx, r.DB, passMonthly, "flats", maintenanceColumns, func(f *models.Flat) bool {
			return consumeMaintenance(&f.MaintenanceRecord)
		})

		report.Shops = section(ctx, r.DB, passMonthly, "shops", maintenanceColumns, func(s *models.Shop) bool {
			return consumeMaintenance(&s.MaintenanceRecord)
		})

		report.Employees = section(ctx, r.DB, passMonthly, "employees", salaryColumns, func(e *models.Employee) bool {
			rec := &e.SalaryRecord
			if !rec.MonthlySalary.IsPositive() {
				return false
			}

			rec.LoanAmount, rec.MonthlyPayable = ConsumeAdvance(rec.MonthlySalary, rec.LoanAmount, rec.MonthlyPayable)
			return true
		})
	}

	report.ElectricityBills = section(ctx, r.DB, passElectricity, "electricityBills", billColumns, func(b *models.ElectricityBill) bool {
		return r.accrue(b, now)
	})

	report.Success = report.Flats.Success &&
		report.Shops.Success &&
		report.Employees.Success &&
		report.ElectricityBills.Success

	return report
}

var (
	maintenanceColumns = []string{"maintenance_advance_maintenance", "maintenance_monthly_outstanding"}
	salaryColumns      = []string{"salary_loan_amount", "salary_monthly_payable"}
	billColumns        = []string{"bill_monthly_payable", "bill_last_applied_at"}
)

func consumeMaintenance(rec *models.MaintenanceRecord) bool {
	if !rec.MonthlyMaintenance.IsPositive() {
		return false
	}

	rec.AdvanceMaintenance, rec.MonthlyOutstanding = ConsumeAdvance(rec.MonthlyMaintenance, rec.AdvanceMaintenance, rec.MonthlyOutstanding)
	return true
}

// accrue adds the monthly bill to the payable on the bill's anniversary.
// A bill is accrued at most once per local day.
func (r *Roller) accrue(b *models.ElectricityBill, now time.Time) bool {
	rec := &b.BillRecord
	if !rec.MonthlyBill.IsPositive() || b.DateOfCreation.IsZero() {
		return false
	}

	if rec.LastAppliedAt != nil && r.Zone.SameDay(*rec.LastAppliedAt, now) {
		return false
	}

	if !AnniversaryDue(b.DateOfCreation, now, r.Zone) {
		return false
	}

	applied := now.UTC()
	rec.MonthlyPayable = rec.MonthlyPayable.Add(rec.MonthlyBill)
	rec.LastAppliedAt = &applied
	return true
}

// section loads a whole collection, applies fn to every document and writes
// the given columns of all documents fn changed in one transaction.
func section[M any](ctx context.Context, db *gorm.DB, pass, collection string, columns []string, fn func(*M) bool) (result SectionResult) {
	defer func() {
		observe(pass, collection, result.Success, result.Updated)
		logResult(pass, collection, result.Success, result.Error).
			Int("updated", result.Updated).
			Msg("billing")
	}()

	var docs []M
	err := db.WithContext(ctx).Find(&docs).Error
	if err != nil {
		result.Error = err.Error()
		return result
	}

	var changed []*M
	for i := range docs {
		if fn(&docs[i]) {
			changed = append(changed, &docs[i])
		}
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, doc := range changed {
			err := tx.Model(doc).Select(columns).Updates(doc).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Updated = len(changed)
	result.Success = true
	return result
}

func logResult(pass, collection string, success bool, msg string) *zerolog.Event {
	event := log.Info()
	if !success {
		event = log.Error().Str("error", msg)
	}

	return event.Str("pass", pass).Str("collection", collection)
}
