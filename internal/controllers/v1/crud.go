package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
	"gorm.io/gorm/clause"
)

// resource is a model with an embedded DefaultModel.
type resource[M any] interface {
	*M
	Default() *models.DefaultModel
}

// registerCRUD registers the list, create, get, update and delete routes
// for a model.
func registerCRUD[M any, PM resource[M]](r *gin.RouterGroup, co Controller) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", list[M](co))
		r.POST("", create[M, PM](co))
	}
	{
		r.OPTIONS("/:id", optionsDetail[M](co))
		r.GET("/:id", get[M](co))
		r.PATCH("/:id", update[M, PM](co))
		r.DELETE("/:id", remove[M](co))
	}
}

func optionsDetail[M any](co Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := load[M](co, c)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		httputil.OptionsGetPatchDelete(c)
	}
}

// load returns the resource identified by the id URI parameter.
func load[M any](co Controller, c *gin.Context) (M, error) {
	var resource M

	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return resource, err
	}

	err = co.DB.First(&resource, "id = ?", uri.ID.UUID).Error
	return resource, err
}

func list[M any](co Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var query ListQuery
		if err := c.ShouldBindQuery(&query); err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, ListResponse[M]{
				Error: &s,
			})
			return
		}

		limit := query.limit()

		var total int64
		err := co.DB.Model(new(M)).Count(&total).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ListResponse[M]{
				Error: &s,
			})
			return
		}

		resources := make([]M, 0)
		err = co.DB.
			Order("created_at ASC").
			Offset(int(query.Offset)).
			Limit(limit).
			Find(&resources).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ListResponse[M]{
				Error: &s,
			})
			return
		}

		c.JSON(http.StatusOK, ListResponse[M]{
			Data: resources,
			Pagination: &Pagination{
				Count:  len(resources),
				Total:  total,
				Offset: query.Offset,
				Limit:  limit,
			},
		})
	}
}

func create[M any, PM resource[M]](co Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		var resource M

		err := httputil.BindData(c, &resource)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), Response[M]{
				Error: &s,
			})
			return
		}

		// IDs and timestamps are always set by the backend
		*PM(&resource).Default() = models.DefaultModel{}

		err = co.DB.Omit(clause.Associations).Create(&resource).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), Response[M]{
				Error: &s,
			})
			return
		}

		c.JSON(http.StatusCreated, Response[M]{Data: &resource})
	}
}

func get[M any](co Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, err := load[M](co, c)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), Response[M]{
				Error: &s,
			})
			return
		}

		c.JSON(http.StatusOK, Response[M]{Data: &resource})
	}
}

// update only changes the fields present in the request body.
func update[M any, PM resource[M]](co Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, err := load[M](co, c)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), Response[M]{
				Error: &s,
			})
			return
		}

		identity := *PM(&resource).Default()

		err = httputil.BindData(c, &resource)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), Response[M]{
				Error: &s,
			})
			return
		}

		*PM(&resource).Default() = identity

		err = co.DB.Omit(clause.Associations).Save(&resource).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), Response[M]{
				Error: &s,
			})
			return
		}

		c.JSON(http.StatusOK, Response[M]{Data: &resource})
	}
}

func remove[M any](co Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, err := load[M](co, c)
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		err = co.DB.Delete(&resource).Error
		if err != nil {
			c.JSON(status(err), httpError{
				Error: err.Error(),
			})
			return
		}

		c.Status(http.StatusNoContent)
	}
}
