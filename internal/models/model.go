package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultModel is the base model for all resources.
type DefaultModel struct {
	ID uuid.UUID `json:"id" gorm:"type:uuid;primaryKey" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID for the resource
	Timestamps
}

// Timestamps only contains the timestamps that gorm sets automatically.
type Timestamps struct {
	CreatedAt time.Time       `json:"createdAt" example:"2022-04-02T19:28:44.491514Z"`                                             // Time the resource was created
	UpdatedAt time.Time       `json:"updatedAt" example:"2022-04-17T20:14:01.048145Z"`                                             // Last time the resource was updated
	DeletedAt *gorm.DeletedAt `json:"deletedAt" gorm:"index" example:"2022-04-22T21:01:05.058161Z" swaggertype:"primitive,string"` // Time the resource was marked as deleted
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000.
func (m *DefaultModel) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)

	if m.DeletedAt != nil {
		m.DeletedAt.Time = m.DeletedAt.Time.In(time.UTC)
	}

	return nil
}

// BeforeCreate is set to generate a UUID for the resource.
func (m *DefaultModel) BeforeCreate(_ *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Exporter is implemented by every model that is part of a backup.
type Exporter interface {
	Export(db *gorm.DB) (json.RawMessage, error)
}

// Registry lists all models that are exported.
//
// Operations that affect all models iterate over it instead of naming
// every model explicitly.
var Registry = []Exporter{
	Flat{},
	Shop{},
	Employee{},
	Maintenance{},
	ShopMaintenance{},
	Salary{},
	CustomHeader{},
	SubHeader{},
	CustomHeaderRecord{},
	ElectricityBill{},
	Loan{},
	MiscellaneousExpense{},
	Event{},
	User{},
	Receipt{},
	MonthClose{},
}

// export returns all non-deleted resources of type T as JSON.
func export[T any](db *gorm.DB) (json.RawMessage, error) {
	var resources []T

	err := db.Find(&resources).Error
	if err != nil {
		return nil, err
	}

	return json.Marshal(resources)
}

// Default returns the embedded DefaultModel so that generic code can reset
// or preserve identity and timestamps.
func (m *DefaultModel) Default() *DefaultModel {
	return m
}

// setCreationDate defaults a creation date to now.
func setCreationDate(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}
