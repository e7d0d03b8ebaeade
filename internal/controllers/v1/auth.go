package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/towerledger/backend/internal/auth"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
)

func RegisterAuthRoutes(r *gin.RouterGroup, co Controller) {
	{
		r.OPTIONS("/login", httputil.OptionsPost)
		r.POST("/login", co.Login)
	}
	{
		r.OPTIONS("/me", httputil.OptionsGet)
		r.GET("/me", auth.Middleware(co.Tokens), co.GetMe)
	}
}

type LoginBody struct {
	Username string `json:"username" example:"manager"` // Username of an admin or email of a manager
	Password string `json:"password" example:"correct horse battery staple"`
}

type LoginResponse struct {
	Token string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Send this in the auth-token header
	Role  auth.Role `json:"role" example:"admin" enums:"admin,manager"`
}

// Me is the account a token belongs to. Exactly one of Admin and Manager is set.
type Me struct {
	Role    auth.Role       `json:"role" example:"manager" enums:"admin,manager"`
	Admin   *models.Admin   `json:"admin,omitempty"`
	Manager *models.Manager `json:"manager,omitempty"`
}

// @Summary		Log in
// @Description	Exchanges admin or manager credentials for a token
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		200		{object}	LoginResponse
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			login	body		LoginBody	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var body LoginBody
	err := httputil.BindData(c, &body)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	token, role, err := auth.Login(c.Request.Context(), co.DB, co.Tokens, body.Username, body.Password)
	if errors.Is(err, auth.ErrCredentials) {
		c.JSON(http.StatusUnauthorized, httpError{
			Error: err.Error(),
		})
		return
	}

	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Role: role})
}

// @Summary		Current account
// @Description	Returns the admin or manager the token was issued to
// @Tags			Auth
// @Produce		json
// @Success		200	{object}	Response[Me]
// @Failure		401	{object}	httpError
// @Failure		404	{object}	Response[Me]
// @Failure		500	{object}	Response[Me]
// @Router			/v1/auth/me [get]
func (co Controller) GetMe(c *gin.Context) {
	claims, _ := auth.ClaimsFrom(c)
	me := Me{Role: claims.Role}

	id, err := claims.AccountID()
	if err != nil {
		s := auth.ErrTokenInvalid.Error()
		c.JSON(http.StatusUnauthorized, Response[Me]{Error: &s})
		return
	}

	db := co.DB.WithContext(c.Request.Context())
	if claims.Role == auth.RoleManager {
		me.Manager = &models.Manager{}
		err = db.First(me.Manager, "id = ?", id).Error
	} else {
		me.Admin = &models.Admin{}
		err = db.First(me.Admin, "id = ?", id).Error
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), Response[Me]{Error: &s})
		return
	}

	c.JSON(http.StatusOK, Response[Me]{Data: &me})
}
