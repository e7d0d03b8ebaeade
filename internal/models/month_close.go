package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MonthClose is the closing balance snapshot of a month.
type MonthClose struct {
	DefaultModel
	Month          types.Month     `json:"month" gorm:"uniqueIndex;not null" swaggertype:"primitive,string" example:"2025-10"`
	ClosingBalance decimal.Decimal `json:"closingBalance" gorm:"type:DECIMAL(20,8)" example:"152300"`
	ComputedAt     time.Time       `json:"computedAt" example:"2025-11-01T00:05:00Z"`
}

func (MonthClose) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[MonthClose](db)
}

// UpsertMonthClose stores the snapshot, replacing an existing snapshot
// for the same month.
func UpsertMonthClose(db *gorm.DB, snapshot *MonthClose) error {
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"closing_balance", "computed_at", "updated_at"}),
	}).Create(snapshot).Error
	if err != nil {
		return err
	}

	var stored MonthClose
	err = db.First(&stored, "month = ?", snapshot.Month).Error
	if err != nil {
		return err
	}

	*snapshot = stored
	return nil
}
