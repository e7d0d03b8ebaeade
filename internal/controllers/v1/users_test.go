package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	v1 "github.com/towerledger/backend/internal/controllers/v1"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/test"
)

func (suite *TestSuiteStandard) TestUsersCreateWithUnits() {
	flat := createFlat(suite.T(), "A-12")
	shop := create[models.Shop](suite.T(), "/shops", map[string]any{"shopNumber": "G-3"})

	header := create[models.CustomHeader](suite.T(), "/custom-headers", map[string]any{
		"headerName": "Parking",
		"headerType": "Incoming",
	})
	record := create[models.CustomHeaderRecord](suite.T(), "/custom-header-records", map[string]any{
		"headerId": header.ID,
		"purpose":  "Parking spot 4",
		"amount":   "500",
	})

	user := create[models.User](suite.T(), "/users", map[string]any{
		"userName":        "Ahmed Raza",
		"userMobile":      "03001234567",
		"ownerOf":         []map[string]any{{"flatId": flat.ID, "owned": true}},
		"renterOf":        []map[string]any{{"shopId": shop.ID, "active": true}},
		"incomingRecords": []uuid.UUID{record.ID},
	})
	suite.Assert().False(user.DateOfJoining.IsZero())
	suite.Require().Len(user.OwnerOf, 1)
	suite.Assert().Equal(flat.ID, *user.OwnerOf[0].FlatID)

	details := fetch[v1.UserDetails](suite.T(), "/users/"+user.ID.String()+"/details")
	suite.Require().Len(details.Units, 2)
	suite.Assert().Equal(v1.RelationOwner, details.Units[0].Relation)
	suite.Assert().Equal("A-12", details.Units[0].FlatNumber)
	suite.Assert().Equal(v1.RelationRenter, details.Units[1].Relation)
	suite.Assert().Equal("G-3", details.Units[1].ShopNumber)
	suite.Assert().True(details.Units[1].Active)

	suite.Require().Len(details.IncomingRecords, 1)
	suite.Require().NotNil(details.IncomingRecords[0].Header)
	suite.Assert().Equal("Parking", details.IncomingRecords[0].Header.HeaderName)
	suite.Assert().Empty(details.ExpenseRecords)
}

func (suite *TestSuiteStandard) TestUsersDetailsSkipDeletedUnits() {
	flat := createFlat(suite.T(), "A-12")
	user := create[models.User](suite.T(), "/users", map[string]any{
		"userName":   "Ahmed Raza",
		"userMobile": "03001234567",
		"tenantOf":   []map[string]any{{"flatId": flat.ID, "active": true}},
	})

	r := test.Request(suite.T(), http.MethodDelete, baseURL+"/flats/"+flat.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	details := fetch[v1.UserDetails](suite.T(), "/users/"+user.ID.String()+"/details")
	suite.Assert().Empty(details.Units)
	suite.Assert().Len(details.User.TenantOf, 1)
}

func (suite *TestSuiteStandard) TestUsersInvalid() {
	flat := createFlat(suite.T(), "A-12")
	shop := create[models.Shop](suite.T(), "/shops", map[string]any{"shopNumber": "G-3"})

	tests := []struct {
		name string
		body map[string]any
		err  error
	}{
		{"Missing name", map[string]any{"userMobile": "03001234567"}, nil},
		{"Mobile not numeric", map[string]any{"userName": "Ahmed Raza", "userMobile": "0300-123"}, nil},
		{"Unknown flat", map[string]any{"userName": "Ahmed Raza", "userMobile": "03001234567", "ownerOf": []map[string]any{{"flatId": uuid.New()}}}, models.ErrReferenceMissing},
		{"Unknown record", map[string]any{"userName": "Ahmed Raza", "userMobile": "03001234567", "expenseRecords": []uuid.UUID{uuid.New()}}, models.ErrReferenceMissing},
		{"Flat and shop", map[string]any{"userName": "Ahmed Raza", "userMobile": "03001234567", "ownerOf": []map[string]any{{"flatId": flat.ID, "shopId": shop.ID}}}, models.ErrUnitLinkInvalid},
		{"Neither flat nor shop", map[string]any{"userName": "Ahmed Raza", "userMobile": "03001234567", "tenantOf": []map[string]any{{"active": true}}}, models.ErrUnitLinkInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, baseURL+"/users", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), test.DecodeError(t, r.Body.Bytes()))
			}
		})
	}

	r := test.Request(suite.T(), http.MethodGet, baseURL+"/users", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ListResponse[models.User]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Empty(response.Data)
}

func (suite *TestSuiteStandard) TestUsersUpdateValidatesUnits() {
	user := create[models.User](suite.T(), "/users", map[string]any{
		"userName":   "Ahmed Raza",
		"userMobile": "03001234567",
	})

	r := test.Request(suite.T(), http.MethodPatch, baseURL+"/users/"+user.ID.String(), map[string]any{
		"ownerOf": []map[string]any{{"shopId": uuid.New()}},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	got := fetch[models.User](suite.T(), "/users/"+user.ID.String())
	suite.Assert().Empty(got.OwnerOf)
	suite.Assert().Equal("Ahmed Raza", got.UserName)
}

func (suite *TestSuiteStandard) TestUsersDetailsNotFound() {
	r := test.Request(suite.T(), http.MethodGet, baseURL+"/users/"+uuid.NewString()+"/details", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("there is no user matching your query", test.DecodeError(suite.T(), r.Body.Bytes()))
}
