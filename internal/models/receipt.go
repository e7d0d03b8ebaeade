package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReceiptKind is the kind of resource a receipt was issued for.
type ReceiptKind string

const (
	ReceiptFlat                 ReceiptKind = "Flat"
	ReceiptShop                 ReceiptKind = "Shop"
	ReceiptSalary               ReceiptKind = "Salary"
	ReceiptElectricityBill      ReceiptKind = "ElectricityBill"
	ReceiptMiscellaneousExpense ReceiptKind = "MiscellaneousExpense"
	ReceiptEvents               ReceiptKind = "Events"
)

// ReceiptKinds lists all valid kinds.
var ReceiptKinds = []ReceiptKind{
	ReceiptFlat,
	ReceiptShop,
	ReceiptSalary,
	ReceiptElectricityBill,
	ReceiptMiscellaneousExpense,
	ReceiptEvents,
}

// Valid reports whether k is one of the known kinds.
func (k ReceiptKind) Valid() bool {
	for _, kind := range ReceiptKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ReceiptType is the direction of money for a receipt.
type ReceiptType string

const (
	ReceiptPaid     ReceiptType = "Paid"
	ReceiptReceived ReceiptType = "Received"
)

// Valid reports whether t is Paid or Received.
func (t ReceiptType) Valid() bool {
	return t == ReceiptPaid || t == ReceiptReceived
}

// Receipt is an entry in the append-only payment ledger.
type Receipt struct {
	DefaultModel
	Kind           ReceiptKind     `json:"kind" gorm:"index:idx_receipts_subject" example:"Flat" enums:"Flat,Shop,Salary,ElectricityBill,MiscellaneousExpense,Events"`
	SubjectID      uuid.UUID       `json:"subjectId" gorm:"type:uuid;index:idx_receipts_subject" example:"8bc8a6d4-1f4e-4b8e-9d55-2f2a30d2d0c4"` // ID of the resource of the given kind
	Slug           string          `json:"slug" example:"maintenance-a-12-2025-10"`
	Type           ReceiptType     `json:"type" example:"Received" enums:"Paid,Received"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)" example:"3500"`
	SerialNumber   int64           `json:"serialNumber" example:"42"`
	DateOfCreation time.Time       `json:"dateOfCreation" example:"2025-10-03T09:12:44Z"`
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	setCreationDate(&r.DateOfCreation)
	return r.DefaultModel.BeforeCreate(tx)
}

func (Receipt) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Receipt](db)
}

// ResolveReceiptSubject loads the resource a receipt of the given kind
// refers to.
func ResolveReceiptSubject(db *gorm.DB, kind ReceiptKind, id uuid.UUID) (any, error) {
	var subject any

	switch kind {
	case ReceiptFlat:
		subject = &Flat{}
	case ReceiptShop:
		subject = &Shop{}
	case ReceiptSalary:
		subject = &Salary{}
	case ReceiptElectricityBill:
		subject = &ElectricityBill{}
	case ReceiptMiscellaneousExpense:
		subject = &MiscellaneousExpense{}
	case ReceiptEvents:
		subject = &Event{}
	default:
		return nil, fmt.Errorf("%w, got '%s'", ErrReceiptKindInvalid, kind)
	}

	err := db.First(subject, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return subject, nil
}

// ReceiptSerialCounter is the name of the counter receipt serials are drawn from.
const ReceiptSerialCounter = "receiptsSerial"

// Counter is a named sequence.
type Counter struct {
	Name  string `gorm:"primaryKey"`
	Value int64
}

// NextValue increments the named counter and returns the new value.
//
// It must be called inside a transaction when the value is used for a write.
func NextValue(tx *gorm.DB, name string) (int64, error) {
	err := increment(tx, name).Error
	if err != nil {
		return 0, err
	}

	var counter Counter
	err = tx.First(&counter, "name = ?", name).Error
	if err != nil {
		return 0, err
	}

	return counter.Value, nil
}

// increment upserts the named counter. The existing value must be qualified
// with the table since postgres also exposes EXCLUDED.value in the update.
func increment(tx *gorm.DB, name string) *gorm.DB {
	current := clause.Column{Table: clause.CurrentTable, Name: "value"}

	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.Assignments(map[string]any{"value": gorm.Expr("? + 1", current)}),
	}).Create(&Counter{Name: name, Value: 1})
}

// SetValue sets the named counter to value.
func SetValue(tx *gorm.DB, name string, value int64) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Counter{Name: name, Value: value}).Error
}
