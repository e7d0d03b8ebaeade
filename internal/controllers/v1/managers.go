package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/towerledger/backend/internal/auth"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
)

// RegisterManagerRoutes registers the manager routes. Only admins may use them.
func RegisterManagerRoutes(r *gin.RouterGroup, co Controller) {
	r.Use(auth.RequireAdmin)
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", list[models.Manager](co))
		r.POST("", co.CreateManager)
	}
	{
		r.OPTIONS("/:id", optionsDetail[models.Manager](co))
		r.GET("/:id", get[models.Manager](co))
		r.PATCH("/:id", co.UpdateManager)
		r.DELETE("/:id", co.DeleteManager)
	}
}

// ManagerEditable are the fields of a manager that can be set directly.
type ManagerEditable struct {
	Email    string `json:"email" binding:"required,email" example:"front.desk@example.com"`
	FullName string `json:"fullName" binding:"required" example:"Sana Iqbal"`
	Role     string `json:"role" example:"manager"`
	models.Permissions
}

type ManagerCreate struct {
	ManagerEditable
	Password string `json:"password" binding:"required,min=6" example:"correct horse battery staple"`
}

type ManagerUpdate struct {
	ManagerEditable
	Password string `json:"password" binding:"omitempty,min=6" example:""` // Only changed when set
}

// apply sets the editable fields and, if password is set, the password.
func (e ManagerEditable) apply(m *models.Manager, password string) error {
	m.Email = models.NormalizeEmail(e.Email)
	m.FullName = e.FullName
	m.Role = e.Role
	if m.Role == "" {
		m.Role = string(auth.RoleManager)
	}
	m.Permissions = e.Permissions

	if password == "" {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	m.PasswordHash = hash
	return nil
}

// @Summary		Create manager
// @Description	Creates a manager account. Permissions default to false except editRole.
// @Tags			Managers
// @Accept			json
// @Produce		json
// @Success		201		{object}	Response[models.Manager]
// @Failure		400		{object}	Response[models.Manager]
// @Failure		403		{object}	httpError
// @Failure		500		{object}	Response[models.Manager]
// @Param			manager	body		ManagerCreate	true	"Manager"
// @Router			/v1/managers [post]
func (co Controller) CreateManager(c *gin.Context) {
	body := ManagerCreate{
		ManagerEditable: ManagerEditable{
			Permissions: models.Permissions{EditRole: true},
		},
	}

	err := httputil.BindData(c, &body)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[models.Manager]{Error: &s})
		return
	}

	var manager models.Manager
	err = body.apply(&manager, body.Password)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, Response[models.Manager]{Error: &s})
		return
	}

	err = co.DB.Create(&manager).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[models.Manager]{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, Response[models.Manager]{Data: &manager})
}

// @Summary		Update manager
// @Description	Updates the fields present in the body. The password is only changed when it is set.
// @Tags			Managers
// @Accept			json
// @Produce		json
// @Success		200		{object}	Response[models.Manager]
// @Failure		400		{object}	Response[models.Manager]
// @Failure		403		{object}	httpError
// @Failure		404		{object}	Response[models.Manager]
// @Failure		500		{object}	Response[models.Manager]
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			manager	body		ManagerUpdate	true	"Manager"
// @Router			/v1/managers/{id} [patch]
func (co Controller) UpdateManager(c *gin.Context) {
	manager, err := load[models.Manager](co, c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[models.Manager]{Error: &s})
		return
	}

	body := ManagerUpdate{
		ManagerEditable: ManagerEditable{
			Email:       manager.Email,
			FullName:    manager.FullName,
			Role:        manager.Role,
			Permissions: manager.Permissions,
		},
	}

	err = httputil.BindData(c, &body)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[models.Manager]{Error: &s})
		return
	}

	err = body.apply(&manager, body.Password)
	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, Response[models.Manager]{Error: &s})
		return
	}

	err = co.DB.Save(&manager).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[models.Manager]{Error: &s})
		return
	}

	c.JSON(http.StatusOK, Response[models.Manager]{Data: &manager})
}

// @Summary		Delete manager
// @Description	Deletes a manager permanently so that the email can be used again
// @Tags			Managers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		403	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/managers/{id} [delete]
func (co Controller) DeleteManager(c *gin.Context) {
	manager, err := load[models.Manager](co, c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.Unscoped().Delete(&manager).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}
