// Package v1 implements the handlers of the /v1 API.
package v1

import (
	"github.com/towerledger/backend/internal/auth"
	"github.com/towerledger/backend/internal/balance"
	"github.com/towerledger/backend/internal/billing"
	"github.com/towerledger/backend/internal/types"
	"gorm.io/gorm"
)

// Controller holds everything the handlers need.
type Controller struct {
	DB     *gorm.DB
	Zone   types.Zone
	Roller *billing.Roller
	Closer *balance.Closer
	Tokens *auth.Issuer

	// Version is reported by the export
	Version string
}

// New returns a Controller for db using the wall clock.
func New(db *gorm.DB, zone types.Zone, tokens *auth.Issuer, version string) Controller {
	return Controller{
		DB:      db,
		Zone:    zone,
		Roller:  billing.NewRoller(db, zone),
		Closer:  balance.NewCloser(db, zone),
		Tokens:  tokens,
		Version: version,
	}
}
