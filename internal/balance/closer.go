package balance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/internal/types"
	"gorm.io/gorm"
)

// Closer computes and stores the closing balance of finished months.
type Closer struct {
	DB   *gorm.DB
	Zone types.Zone

	// Now returns the current time. It defaults to time.Now.
	Now func() time.Time
}

// NewCloser returns a Closer using the wall clock.
func NewCloser(db *gorm.DB, zone types.Zone) *Closer {
	return &Closer{DB: db, Zone: zone, Now: time.Now}
}

func (c *Closer) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Current returns the balance derived from all records together with the
// receipt ledger balance at the closer's current time.
func (c *Closer) Current(ctx context.Context) (Breakdown, decimal.Decimal, error) {
	breakdown, err := Derive(ctx, c.DB)
	if err != nil {
		return Breakdown{}, decimal.Zero, err
	}

	ledger, err := Ledger(ctx, c.DB, c.now())
	if err != nil {
		return Breakdown{}, decimal.Zero, err
	}

	return breakdown, ledger, nil
}

// RunResult is the outcome of a month close run.
type RunResult struct {
	Success            bool             `json:"success" example:"true"`
	RanMonthlySections bool             `json:"ranMonthlySections" example:"true"`
	Month              *types.Month     `json:"month,omitempty" swaggertype:"primitive,string" example:"2025-10"`
	ClosingBalance     *decimal.Decimal `json:"closingBalance,omitempty" example:"152300"`
}

// Run closes the previous local month.
//
// Unless forced, it only does so on the first local day of a month.
func (c *Closer) Run(ctx context.Context, force bool) (RunResult, error) {
	now := c.now()
	if !force && !c.Zone.IsFirstDay(now) {
		return RunResult{Success: true}, nil
	}

	month, _ := c.Zone.PreviousMonth(now)
	snapshot, err := c.close(ctx, month, now)
	if err != nil {
		return RunResult{}, err
	}

	log.Info().
		Str("month", month.String()).
		Str("closingBalance", snapshot.ClosingBalance.String()).
		Msg("month close")

	return RunResult{
		Success:            true,
		RanMonthlySections: true,
		Month:              &snapshot.Month,
		ClosingBalance:     &snapshot.ClosingBalance,
	}, nil
}

// close computes the ledger balance at the end of month and upserts the snapshot.
func (c *Closer) close(ctx context.Context, month types.Month, now time.Time) (models.MonthClose, error) {
	closing, err := Ledger(ctx, c.DB, c.Zone.MonthEnd(month))
	if err != nil {
		return models.MonthClose{}, fmt.Errorf("computing closing balance for %s: %w", month, err)
	}

	snapshot := models.MonthClose{
		Month:          month,
		ClosingBalance: closing,
		ComputedAt:     now.UTC(),
	}

	err = models.UpsertMonthClose(c.DB.WithContext(ctx), &snapshot)
	if err != nil {
		return models.MonthClose{}, err
	}

	return snapshot, nil
}

// Get returns the stored snapshot for month or nil if there is none.
func (c *Closer) Get(ctx context.Context, month types.Month) (*models.MonthClose, error) {
	var snapshot models.MonthClose
	err := c.DB.WithContext(ctx).First(&snapshot, "month = ?", month).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// Previous returns the snapshot of the month before the one the local date
// start falls into. A missing snapshot is computed when forceCompute is set.
func (c *Closer) Previous(ctx context.Context, start time.Time, forceCompute bool) (types.Month, *models.MonthClose, error) {
	month := c.Zone.MonthOf(start).AddDate(0, -1)

	snapshot, err := c.Get(ctx, month)
	if err != nil || snapshot != nil || !forceCompute {
		return month, snapshot, err
	}

	computed, err := c.close(ctx, month, c.now())
	if err != nil {
		return month, nil, err
	}

	return month, &computed, nil
}
