package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/internal/types"
)

// NextPeriodStart returns the first instant of the month after now, in UTC.
func NextPeriodStart(now time.Time) time.Time {
	n := now.UTC()
	return time.Date(n.Year(), n.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

// AdvanceSchedule rolls a month array forward to the period starting at next.
//
// Pending periods other than next become Due. If there is no period for
// next, a Pending one for amount is appended. The input is not modified.
func AdvanceSchedule(charges []models.MonthlyCharge, next time.Time, amount decimal.Decimal) (result []models.MonthlyCharge, added, changed bool) {
	period := types.MonthOf(next.UTC())
	result = make([]models.MonthlyCharge, 0, len(charges)+1)

	hasNext := false
	for _, c := range charges {
		if period.Contains(c.OccurrenceDate.UTC()) {
			hasNext = true
		} else if c.Status == models.ChargePending {
			c.Status = models.ChargeDue
			changed = true
		}

		result = append(result, c)
	}

	if !hasNext {
		result = append(result, models.MonthlyCharge{
			Status:         models.ChargePending,
			Amount:         amount,
			OccurrenceDate: period.Start(),
			PaidAmount:     decimal.Zero,
		})
		added = true
		changed = true
	}

	return result, added, changed
}

// ConsumeAdvance bills one period of monthly against a prepaid balance.
//
// The advance is used up first, whatever it does not cover accrues as
// outstanding. Both balances are clamped to zero before use and can
// never become negative.
func ConsumeAdvance(monthly, advance, outstanding decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	advance = decimal.Max(advance, decimal.Zero)
	outstanding = decimal.Max(outstanding, decimal.Zero)

	if !advance.IsPositive() {
		return advance, outstanding.Add(monthly)
	}

	if advance.GreaterThanOrEqual(monthly) {
		return advance.Sub(monthly), outstanding
	}

	return decimal.Zero, outstanding.Add(monthly.Sub(advance))
}

// AnniversaryDue reports whether now is a monthly anniversary of created
// in the given zone, at least one month after creation.
//
// When the creation day does not exist in the current month, the last day
// of the month is the anniversary.
func AnniversaryDue(created, now time.Time, zone types.Zone) bool {
	cy, cm, cd := zone.In(created).Date()
	ny, nm, nd := zone.In(now).Date()

	if (ny-cy)*12+int(nm-cm) < 1 {
		return false
	}

	day := cd
	if last := daysIn(ny, nm); day > last {
		day = last
	}

	return nd == day
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
