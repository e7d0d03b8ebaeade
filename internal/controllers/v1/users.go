package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
	"gorm.io/gorm"
)

// RegisterUserRoutes registers the CRUD routes and the details route.
func RegisterUserRoutes(r *gin.RouterGroup, co Controller) {
	registerCRUD[models.User](r, co)
	{
		r.OPTIONS("/:id/details", httputil.OptionsGet)
		r.GET("/:id/details", co.GetUserDetails)
	}
}

type Relation string

const (
	RelationOwner  Relation = "Owner"
	RelationTenant Relation = "Tenant"
	RelationRenter Relation = "Renter"
)

// UserUnit is a unit link with the number of the flat or shop.
type UserUnit struct {
	Relation Relation `json:"relation" example:"Owner" enums:"Owner,Tenant,Renter"`
	models.UnitLink
	FlatNumber string `json:"flatNumber,omitempty" example:"A-12"`
	ShopNumber string `json:"shopNumber,omitempty" example:""`
}

type UserDetails struct {
	User            models.User                 `json:"user"`
	Units           []UserUnit                  `json:"units"`
	IncomingRecords []models.CustomHeaderRecord `json:"incomingRecords"` // With their header
	ExpenseRecords  []models.CustomHeaderRecord `json:"expenseRecords"`  // With their header
}

// @Summary		Get user details
// @Description	Returns a user with the numbers of linked units and the linked records with their headers. Deleted units and records are left out.
// @Tags			Users
// @Produce		json
// @Success		200	{object}	Response[UserDetails]
// @Failure		400	{object}	Response[UserDetails]
// @Failure		404	{object}	Response[UserDetails]
// @Failure		500	{object}	Response[UserDetails]
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id}/details [get]
func (co Controller) GetUserDetails(c *gin.Context) {
	user, err := load[models.User](co, c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[UserDetails]{Error: &s})
		return
	}

	db := co.DB.WithContext(c.Request.Context())
	details, err := userDetails(db, user)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[UserDetails]{Error: &s})
		return
	}

	c.JSON(http.StatusOK, Response[UserDetails]{Data: &details})
}

func userDetails(db *gorm.DB, user models.User) (UserDetails, error) {
	details := UserDetails{
		User:  user,
		Units: make([]UserUnit, 0),
	}

	var flatIDs, shopIDs []uuid.UUID
	relations := []struct {
		relation Relation
		links    []models.UnitLink
	}{
		{RelationOwner, user.OwnerOf},
		{RelationTenant, user.TenantOf},
		{RelationRenter, user.RenterOf},
	}

	for _, r := range relations {
		for _, l := range r.links {
			details.Units = append(details.Units, UserUnit{Relation: r.relation, UnitLink: l})
			if l.FlatID != nil {
				flatIDs = append(flatIDs, *l.FlatID)
			}
			if l.ShopID != nil {
				shopIDs = append(shopIDs, *l.ShopID)
			}
		}
	}

	flats, err := byID[models.Flat](db, flatIDs)
	if err != nil {
		return UserDetails{}, err
	}

	shops, err := byID[models.Shop](db, shopIDs)
	if err != nil {
		return UserDetails{}, err
	}

	units := details.Units[:0]
	for _, u := range details.Units {
		if u.FlatID != nil {
			f, ok := flats[*u.FlatID]
			if !ok {
				continue
			}
			u.FlatNumber = f.FlatNumber
		} else {
			s, ok := shops[*u.ShopID]
			if !ok {
				continue
			}
			u.ShopNumber = s.ShopNumber
		}
		units = append(units, u)
	}
	details.Units = units

	details.IncomingRecords, err = records(db, user.IncomingRecords)
	if err != nil {
		return UserDetails{}, err
	}

	details.ExpenseRecords, err = records(db, user.ExpenseRecords)
	if err != nil {
		return UserDetails{}, err
	}

	return details, nil
}

// byID loads all non-deleted M with the given IDs.
func byID[M any, PM resource[M]](db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]M, error) {
	found := make(map[uuid.UUID]M, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	var resources []M
	err := db.Where("id IN ?", ids).Find(&resources).Error
	if err != nil {
		return nil, err
	}

	for i := range resources {
		found[PM(&resources[i]).Default().ID] = resources[i]
	}
	return found, nil
}

// records loads the custom header records with the given IDs in their order.
func records(db *gorm.DB, ids []uuid.UUID) ([]models.CustomHeaderRecord, error) {
	result := make([]models.CustomHeaderRecord, 0, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var loaded []models.CustomHeaderRecord
	err := db.Preload("Header").Where("id IN ?", ids).Find(&loaded).Error
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]models.CustomHeaderRecord, len(loaded))
	for _, r := range loaded {
		found[r.ID] = r
	}

	for _, id := range ids {
		if r, ok := found[id]; ok {
			result = append(result, r)
		}
	}
	return result, nil
}
