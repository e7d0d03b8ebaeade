package v1_test

import (
	"net/http"
	"time"

	"github.com/towerledger/backend/internal/billing"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/test"
)

func (suite *TestSuiteStandard) TestDueMonths() {
	flat := createFlat(suite.T(), "A-12")
	maintenance := create[models.Maintenance](suite.T(), "/maintenance", map[string]any{
		"flatId":            flat.ID.String(),
		"maintenanceAmount": "3500",
		"months": []map[string]any{
			{"status": "Pending", "amount": "3500", "occurrenceDate": "2020-01-01T00:00:00Z", "paidAmount": "0"},
		},
	})

	// Never scheduled, stays untouched
	unscheduled := create[models.Maintenance](suite.T(), "/maintenance", map[string]any{
		"flatId":            flat.ID.String(),
		"maintenanceAmount": "3500",
	})

	for _, method := range []string{http.MethodPost, http.MethodGet} {
		r := test.Request(suite.T(), method, baseURL+"/auto/due-months", nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var report billing.DueMonthsReport
		test.DecodeResponse(suite.T(), &r, &report)
		suite.Assert().True(report.Success)
		suite.Assert().Equal(billing.NextPeriodStart(time.Now()), report.NextPeriodStart)
		suite.Assert().Equal(1, report.Maintenance.Matched)
		suite.Assert().True(report.Salaries.Success)

		if method == http.MethodPost {
			suite.Assert().Equal(1, report.Maintenance.Modified)
			suite.Assert().Equal(1, report.Maintenance.Added)
		} else {
			suite.Assert().Equal(0, report.Maintenance.Modified, "second run must not change anything")
		}
	}

	got := fetch[models.Maintenance](suite.T(), "/maintenance/"+maintenance.ID.String())
	suite.Require().Len(got.Months, 2)
	suite.Assert().Equal(models.ChargeDue, got.Months[0].Status)
	suite.Assert().Equal(models.ChargePending, got.Months[1].Status)
	suite.Assert().Equal(billing.NextPeriodStart(time.Now()), got.Months[1].OccurrenceDate.UTC())
	assertDecimal(suite.T(), "3500", got.Months[1].Amount)

	untouched := fetch[models.Maintenance](suite.T(), "/maintenance/"+unscheduled.ID.String())
	suite.Assert().Len(untouched.Months, 0)
}

func (suite *TestSuiteStandard) TestDueMonthsDatabaseClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodPost, baseURL+"/auto/due-months", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var report billing.DueMonthsReport
	test.DecodeResponse(suite.T(), &r, &report)
	suite.Assert().False(report.Success)
	suite.Assert().False(report.Maintenance.Success)
	suite.Assert().NotEmpty(report.Maintenance.Error)
}

func (suite *TestSuiteStandard) TestMonthlyRolloverForced() {
	flat := create[models.Flat](suite.T(), "/flats", map[string]any{
		"flatNumber": "A-12",
		"maintenanceRecord": map[string]any{
			"monthlyMaintenance": "100",
			"advanceMaintenance": "150",
		},
	})

	employee := create[models.Employee](suite.T(), "/employees", map[string]any{
		"employeeName": "Bashir Khan",
		"salaryRecord": map[string]any{
			"monthlySalary": "1000",
			"loanAmount":    "400",
		},
	})

	for _, query := range []string{"?force=true", "?forceMonthly=true"} {
		r := test.Request(suite.T(), http.MethodPost, baseURL+"/auto/monthly-rollover"+query, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var report billing.RolloverReport
		test.DecodeResponse(suite.T(), &r, &report)
		suite.Assert().True(report.Success)
		suite.Assert().True(report.RanMonthlySections)
		suite.Assert().Equal(1, report.Flats.Updated)
		suite.Assert().Equal(1, report.Employees.Updated)
	}

	// 150 advance: 50 left after the first month, then 50 accrued as outstanding
	got := fetch[models.Flat](suite.T(), "/flats/"+flat.ID.String())
	assertDecimal(suite.T(), "0", got.MaintenanceRecord.AdvanceMaintenance)
	assertDecimal(suite.T(), "50", got.MaintenanceRecord.MonthlyOutstanding)

	// 400 loan: worked off in the first month, 600 and then 1000 payable
	e := fetch[models.Employee](suite.T(), "/employees/"+employee.ID.String())
	assertDecimal(suite.T(), "0", e.SalaryRecord.LoanAmount)
	assertDecimal(suite.T(), "1600", e.SalaryRecord.MonthlyPayable)
}

func (suite *TestSuiteStandard) TestMonthlyRolloverDatabaseClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodPost, baseURL+"/auto/monthly-rollover?force=true", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var report billing.RolloverReport
	test.DecodeResponse(suite.T(), &r, &report)
	suite.Assert().False(report.Success)
	suite.Assert().False(report.ElectricityBills.Success)
}
