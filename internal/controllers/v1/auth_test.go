package v1_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/towerledger/backend/internal/auth"
	v1 "github.com/towerledger/backend/internal/controllers/v1"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/test"
)

func (suite *TestSuiteStandard) TestLogin() {
	suite.Require().Nil(auth.EnsureAdmin(context.Background(), models.DB, "manager", "correct horse"))

	r := test.Request(suite.T(), http.MethodPost, baseURL+"/auth/login", v1.LoginBody{
		Username: "manager",
		Password: "correct horse",
	}, map[string]string{auth.HeaderToken: ""})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.LoginResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotEmpty(response.Token)

	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"auth-token header", map[string]string{auth.HeaderToken: response.Token}},
		{"Bearer token", map[string]string{auth.HeaderToken: "", "Authorization": "Bearer " + response.Token}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, baseURL+"/flats", nil, tt.headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)
		})
	}
}

func (suite *TestSuiteStandard) TestLoginFails() {
	suite.Require().Nil(auth.EnsureAdmin(context.Background(), models.DB, "manager", "correct horse"))

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Wrong password", v1.LoginBody{Username: "manager", Password: "wrong horse"}, http.StatusUnauthorized},
		{"Unknown user", v1.LoginBody{Username: "owner", Password: "correct horse"}, http.StatusUnauthorized},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, baseURL+"/auth/login", tt.body, map[string]string{auth.HeaderToken: ""})
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, auth.ErrCredentials.Error(), test.DecodeError(t, r.Body.Bytes()))
			}
		})
	}
}
