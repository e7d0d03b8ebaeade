package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ActiveStatus says who currently occupies a unit.
type ActiveStatus string

const (
	ActiveOwner  ActiveStatus = "Owner"
	ActiveTenant ActiveStatus = "Tenant"
)

// Occupancy holds owner and tenant contacts of a flat or shop.
type Occupancy struct {
	OwnerName    string       `json:"ownerName" example:"Ahmed Raza"`
	OwnerMobile  string       `json:"ownerMobile" example:"03001234567"`
	TenantName   string       `json:"tenantName" example:""`
	TenantMobile string       `json:"tenantMobile" example:""`
	ActiveStatus ActiveStatus `json:"activeStatus" gorm:"default:Owner" example:"Owner" enums:"Owner,Tenant"`
}

// MaintenanceRecord is the maintenance account of a flat or shop.
//
// AdvanceMaintenance and MonthlyOutstanding are adjusted against each
// other by the monthly rollover.
type MaintenanceRecord struct {
	MonthlyMaintenance      decimal.Decimal `json:"monthlyMaintenance" gorm:"type:DECIMAL(20,8)" example:"3500"`
	AdvanceMaintenance      decimal.Decimal `json:"advanceMaintenance" gorm:"type:DECIMAL(20,8)" example:"0"`
	MonthlyOutstanding      decimal.Decimal `json:"monthlyOutstanding" gorm:"type:DECIMAL(20,8)" example:"0"`
	Outstanding             decimal.Decimal `json:"outstanding" gorm:"type:DECIMAL(20,8)" example:"0"` // Arrears carried over from before the first rollover
	OtherOutstanding        decimal.Decimal `json:"otherOutstanding" gorm:"type:DECIMAL(20,8)" example:"0"`
	OtherOutstandingRemarks string          `json:"otherOutstandingRemarks" example:""`
	PaidAmount              decimal.Decimal `json:"paidAmount" gorm:"type:DECIMAL(20,8)" example:"0"`
}

type Flat struct {
	DefaultModel
	FlatNumber   string `json:"flatNumber" example:"A-12"`
	SerialNumber *int   `json:"serialNumber" example:"48213"`
	Occupancy
	MaintenanceRecord MaintenanceRecord `json:"maintenanceRecord" gorm:"embedded;embeddedPrefix:maintenance_"`
}

func (Flat) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Flat](db)
}

type Shop struct {
	DefaultModel
	ShopNumber   string `json:"shopNumber" example:"G-3"`
	SerialNumber *int   `json:"serialNumber" example:"13370"`
	Occupancy
	MaintenanceRecord MaintenanceRecord `json:"maintenanceRecord" gorm:"embedded;embeddedPrefix:maintenance_"`
}

func (Shop) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[Shop](db)
}
