package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UnitLink ties a user to exactly one flat or shop.
type UnitLink struct {
	FlatID *uuid.UUID `json:"flatId,omitempty" example:"5b1c2a8e-3f3e-4d34-9b0b-2c0f5f1c7a10"`
	ShopID *uuid.UUID `json:"shopId,omitempty" example:""`
	Owned  bool       `json:"owned" example:"true"`   // Used for ownerOf
	Active bool       `json:"active" example:"false"` // Used for tenantOf and renterOf
}

type PayScore struct {
	Score int `json:"score" example:"0"`
}

// User is an owner, tenant or renter of units in the building.
type User struct {
	DefaultModel
	UserName        string                        `json:"userName" binding:"required" example:"Ahmed Raza"`
	UserPhoto       *string                       `json:"userPhoto" example:"https://example.com/photos/ahmed.jpg"`
	UserMobile      string                        `json:"userMobile" binding:"required,numeric" example:"03001234567"`
	IncomingRecords datatypes.JSONSlice[uuid.UUID] `json:"incomingRecords"` // Custom header records the user paid in
	ExpenseRecords  datatypes.JSONSlice[uuid.UUID] `json:"expenseRecords"`  // Custom header records paid out to the user
	OwnerOf         datatypes.JSONSlice[UnitLink]  `json:"ownerOf"`
	TenantOf        datatypes.JSONSlice[UnitLink]  `json:"tenantOf"`
	RenterOf        datatypes.JSONSlice[UnitLink]  `json:"renterOf"`
	PayScore        datatypes.JSONSlice[PayScore]  `json:"payScore"`
	DateOfJoining   time.Time                     `json:"dateOfJoining" example:"2024-06-01T00:00:00Z"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	setCreationDate(&u.DateOfJoining)
	return u.DefaultModel.BeforeCreate(tx)
}

// BeforeSave verifies that all referenced units and records exist.
func (u *User) BeforeSave(tx *gorm.DB) error {
	var flats, shops []uuid.UUID
	for _, links := range [][]UnitLink{u.OwnerOf, u.TenantOf, u.RenterOf} {
		for _, l := range links {
			if (l.FlatID == nil) == (l.ShopID == nil) {
				return ErrUnitLinkInvalid
			}

			if l.FlatID != nil {
				flats = append(flats, *l.FlatID)
			} else {
				shops = append(shops, *l.ShopID)
			}
		}
	}

	err := referencesExist[Flat](tx, flats)
	if err != nil {
		return err
	}

	err = referencesExist[Shop](tx, shops)
	if err != nil {
		return err
	}

	records := append(append([]uuid.UUID{}, u.IncomingRecords...), u.ExpenseRecords...)
	return referencesExist[CustomHeaderRecord](tx, records)
}

// referencesExist returns ErrReferenceMissing unless a non-deleted M exists
// for every id.
func referencesExist[M any](tx *gorm.DB, ids []uuid.UUID) error {
	unique := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}

	if len(unique) == 0 {
		return nil
	}

	var count int64
	err := tx.Session(&gorm.Session{NewDB: true}).Model(new(M)).Where("id IN ?", ids).Count(&count).Error
	if err != nil {
		return err
	}

	if count != int64(len(unique)) {
		return ErrReferenceMissing
	}
	return nil
}

func (User) Export(db *gorm.DB) (json.RawMessage, error) {
	return export[User](db)
}
