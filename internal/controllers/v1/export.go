package v1

import (
	"encoding/json"
	"net/http"
	"reflect"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
)

func RegisterExportRoutes(r *gin.RouterGroup, co Controller) {
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", co.GetExport)
	}
}

type ExportResponse struct {
	Version      string                     `json:"version" example:"1.0.0"`                         // Version of the backend the export was created with
	CreationTime time.Time                  `json:"creationTime" example:"2025-11-01T00:05:00.000Z"` // Time the export was created
	Data         map[string]json.RawMessage `json:"data"`                                            // Every resource, keyed by its type
}

// @Summary		Export
// @Description	Exports all resources for a backup
// @Tags			Export
// @Produce		json
// @Success		200	{object}	ExportResponse
// @Failure		500	{object}	httpError
// @Router			/v1/export [get]
func (co Controller) GetExport(c *gin.Context) {
	resources := make(map[string]json.RawMessage, len(models.Registry))

	for _, model := range models.Registry {
		b, err := model.Export(co.DB.WithContext(c.Request.Context()))
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		resources[reflect.TypeOf(model).Name()] = b
	}

	c.JSON(http.StatusOK, ExportResponse{
		Version:      co.Version,
		CreationTime: time.Now().UTC(),
		Data:         resources,
	})
}
