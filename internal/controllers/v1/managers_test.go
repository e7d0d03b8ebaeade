package v1_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/towerledger/backend/internal/auth"
	v1 "github.com/towerledger/backend/internal/controllers/v1"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/test"
)

func createManager(t *testing.T, email, password string) models.Manager {
	return create[models.Manager](t, "/managers", map[string]any{
		"email":         email,
		"password":      password,
		"fullName":      "Sana Iqbal",
		"payAllAmounts": true,
	})
}

// login returns the token for the credentials.
func login(t *testing.T, username, password string) v1.LoginResponse {
	r := test.Request(t, http.MethodPost, baseURL+"/auth/login", v1.LoginBody{
		Username: username,
		Password: password,
	}, map[string]string{auth.HeaderToken: ""})
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.LoginResponse
	test.DecodeResponse(t, &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestManagersCreate() {
	manager := createManager(suite.T(), "Front.Desk@Example.com", "desk-secret")

	suite.Assert().Equal("front.desk@example.com", manager.Email)
	suite.Assert().Equal("manager", manager.Role)
	suite.Assert().True(manager.PayAllAmounts)
	suite.Assert().True(manager.EditRole, "editRole defaults to true")
	suite.Assert().False(manager.ChangeAllAmounts)

	r := test.Request(suite.T(), http.MethodGet, baseURL+"/managers/"+manager.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().NotContains(r.Body.String(), "password", "the password hash is never returned")
}

func (suite *TestSuiteStandard) TestManagersCreateInvalid() {
	createManager(suite.T(), "front.desk@example.com", "desk-secret")

	tests := []struct {
		name string
		body map[string]any
		err  string
	}{
		{"Invalid email", map[string]any{"email": "front desk", "password": "desk-secret", "fullName": "Sana Iqbal"}, ""},
		{"Short password", map[string]any{"email": "gate@example.com", "password": "12345", "fullName": "Sana Iqbal"}, ""},
		{"No name", map[string]any{"email": "gate@example.com", "password": "desk-secret"}, ""},
		{"Duplicate email", map[string]any{"email": "FRONT.DESK@example.com", "password": "desk-secret", "fullName": "Sana Iqbal"}, models.ErrManagerEmailNotUnique.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, baseURL+"/managers", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			if tt.err != "" {
				assert.Equal(t, tt.err, test.DecodeError(t, r.Body.Bytes()))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestManagersUpdate() {
	manager := createManager(suite.T(), "front.desk@example.com", "desk-secret")

	// Without a password, the password stays the same
	r := test.Request(suite.T(), http.MethodPatch, baseURL+"/managers/"+manager.ID.String(), map[string]any{
		"lumpSumAmounts": true,
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response[models.Manager]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.LumpSumAmounts)
	suite.Assert().True(response.Data.PayAllAmounts)
	suite.Assert().Equal("Sana Iqbal", response.Data.FullName)

	login(suite.T(), "front.desk@example.com", "desk-secret")

	r = test.Request(suite.T(), http.MethodPatch, baseURL+"/managers/"+manager.ID.String(), map[string]any{
		"password": "new-desk-secret",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	login(suite.T(), "front.desk@example.com", "new-desk-secret")

	r = test.Request(suite.T(), http.MethodPatch, baseURL+"/managers/"+manager.ID.String(), map[string]any{
		"password": "short",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestManagersDelete() {
	manager := createManager(suite.T(), "front.desk@example.com", "desk-secret")

	r := test.Request(suite.T(), http.MethodDelete, baseURL+"/managers/"+manager.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, baseURL+"/managers/"+manager.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("there is no manager matching your query", test.DecodeError(suite.T(), r.Body.Bytes()))

	// The email is free again
	createManager(suite.T(), "front.desk@example.com", "desk-secret")
}

func (suite *TestSuiteStandard) TestManagersAdminOnly() {
	manager := createManager(suite.T(), "front.desk@example.com", "desk-secret")
	session := login(suite.T(), "front.desk@example.com", "desk-secret")
	suite.Assert().Equal(auth.RoleManager, session.Role)

	headers := map[string]string{auth.HeaderToken: session.Token}

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/managers", http.StatusForbidden},
		{http.MethodPost, "/managers", http.StatusForbidden},
		{http.MethodGet, "/managers/" + manager.ID.String(), http.StatusForbidden},
		{http.MethodDelete, "/managers/" + manager.ID.String(), http.StatusForbidden},
		// Everything else is open to managers
		{http.MethodGet, "/flats", http.StatusOK},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := test.Request(t, tt.method, baseURL+tt.path, nil, headers)
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusForbidden {
				assert.Equal(t, auth.ErrAdminOnly.Error(), test.DecodeError(t, r.Body.Bytes()))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMe() {
	suite.Require().Nil(auth.EnsureAdmin(context.Background(), models.DB, "admin", "correct horse"))
	createManager(suite.T(), "front.desk@example.com", "desk-secret")

	admin := login(suite.T(), "admin", "correct horse")
	suite.Assert().Equal(auth.RoleAdmin, admin.Role)

	me := fetchWithToken[v1.Me](suite.T(), "/auth/me", admin.Token)
	suite.Assert().Equal(auth.RoleAdmin, me.Role)
	suite.Require().NotNil(me.Admin)
	suite.Assert().Equal("admin", me.Admin.Username)
	suite.Assert().Nil(me.Manager)

	manager := login(suite.T(), "front.desk@example.com", "desk-secret")
	me = fetchWithToken[v1.Me](suite.T(), "/auth/me", manager.Token)
	suite.Assert().Equal(auth.RoleManager, me.Role)
	suite.Require().NotNil(me.Manager)
	suite.Assert().Equal("front.desk@example.com", me.Manager.Email)
	suite.Assert().True(me.Manager.PayAllAmounts)
	suite.Assert().Nil(me.Admin)
}

func (suite *TestSuiteStandard) TestMeErrors() {
	// Valid token of an admin that does not exist
	r := test.Request(suite.T(), http.MethodGet, baseURL+"/auth/me", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, baseURL+"/auth/me", nil, map[string]string{auth.HeaderToken: ""})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	// Expired token
	token, err := auth.NewIssuer(test.Secret, -time.Minute).Issue(uuid.New(), "admin", auth.RoleAdmin)
	suite.Require().Nil(err)
	r = test.Request(suite.T(), http.MethodGet, baseURL+"/auth/me", nil, map[string]string{auth.HeaderToken: token})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func fetchWithToken[M any](t *testing.T, path, token string) M {
	r := test.Request(t, http.MethodGet, baseURL+path, nil, map[string]string{auth.HeaderToken: token})
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.Response[M]
	test.DecodeResponse(t, &r, &response)
	if response.Data == nil {
		t.Fatalf("no data in response: %s", r.Body.String())
	}
	return *response.Data
}
