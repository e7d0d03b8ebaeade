// Package balance computes the building's cash balance and keeps monthly
// closing snapshots of it.
package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/towerledger/backend/internal/models"
	"gorm.io/gorm"
)

// Ledger returns the receipt ledger balance at boundary: everything received
// minus everything paid, counting receipts created up to and including boundary.
func Ledger(ctx context.Context, db *gorm.DB, boundary time.Time) (decimal.Decimal, error) {
	received, err := receiptTotal(ctx, db, models.ReceiptReceived, boundary)
	if err != nil {
		return decimal.Zero, err
	}

	paid, err := receiptTotal(ctx, db, models.ReceiptPaid, boundary)
	if err != nil {
		return decimal.Zero, err
	}

	return received.Sub(paid), nil
}

// receiptTotal sums the amounts of all receipts of the given type.
//
// The amounts are summed in Go, SUM over DECIMAL columns is a float in sqlite.
func receiptTotal(ctx context.Context, db *gorm.DB, receiptType models.ReceiptType, boundary time.Time) (decimal.Decimal, error) {
	var amounts []decimal.NullDecimal
	err := db.WithContext(ctx).
		Model(&models.Receipt{}).
		Where("type = ? AND created_at <= ?", receiptType, boundary.UTC()).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing %s receipts: %w", receiptType, err)
	}

	return total(amounts), nil
}
