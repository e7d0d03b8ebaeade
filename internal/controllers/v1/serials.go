package v1

import (
	"math/rand"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ryanuber/go-glob"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const (
	serialMin = 10000
	serialMax = 99999
)

// serialCollections are the collections that get random serial numbers,
// keyed by their name in the model query parameter.
var serialCollections = map[string]func(*gorm.DB) (int, error){
	"events":                assignSerials[models.Event],
	"flats":                 assignSerials[models.Flat],
	"employees":             assignSerials[models.Employee],
	"electricityBills":      assignSerials[models.ElectricityBill],
	"shops":                 assignSerials[models.Shop],
	"miscellaneousExpenses": assignSerials[models.MiscellaneousExpense],
}

func RegisterSerialRoutes(r *gin.RouterGroup, co Controller) {
	{
		r.OPTIONS("/assign", httputil.OptionsPost)
		r.POST("/assign", co.AssignSerials)
	}
}

type AssignSerialsResponse struct {
	Assigned map[string]int `json:"assigned"` // Number of serials assigned per collection
}

// @Summary		Assign serial numbers
// @Description	Assigns unique random five digit serial numbers to all resources that do not have one
// @Tags			Serials
// @Produce		json
// @Success		200		{object}	AssignSerialsResponse
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			model	query		string	false	"Glob matched against events, flats, employees, electricityBills, shops and miscellaneousExpenses. Defaults to all."
// @Router			/v1/serials/assign [post]
func (co Controller) AssignSerials(c *gin.Context) {
	pattern := c.DefaultQuery("model", "*")

	var names []string
	for name := range serialCollections {
		if glob.Glob(pattern, name) {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		c.JSON(http.StatusBadRequest, httpError{
			Error: errNoCollectionMatch.Error(),
		})
		return
	}
	slices.Sort(names)

	assigned := make(map[string]int, len(names))
	err := co.DB.Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			n, err := serialCollections[name](tx)
			if err != nil {
				return err
			}
			assigned[name] = n
		}
		return nil
	})
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, AssignSerialsResponse{Assigned: assigned})
}

// assignSerials gives every resource of type M without a serial number a
// random one that is unique within the collection.
func assignSerials[M any](tx *gorm.DB) (int, error) {
	var used []int
	err := tx.Model(new(M)).Where("serial_number IS NOT NULL").Pluck("serial_number", &used).Error
	if err != nil {
		return 0, err
	}

	var missing []string
	err = tx.Model(new(M)).Where("serial_number IS NULL").Order("created_at ASC").Pluck("id", &missing).Error
	if err != nil {
		return 0, err
	}

	if len(used)+len(missing) > serialMax-serialMin+1 {
		return 0, errSerialsExhausted
	}

	taken := make(map[int]bool, len(used)+len(missing))
	for _, serial := range used {
		taken[serial] = true
	}

	for _, id := range missing {
		serial := serialMin + rand.Intn(serialMax-serialMin+1)
		for taken[serial] {
			serial = serialMin + rand.Intn(serialMax-serialMin+1)
		}
		taken[serial] = true

		err := tx.Model(new(M)).Where("id = ?", id).Update("serial_number", serial).Error
		if err != nil {
			return 0, err
		}
	}

	return len(missing), nil
}
