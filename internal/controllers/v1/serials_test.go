package v1_test

import (
	"net/http"

	v1 "github.com/towerledger/backend/internal/controllers/v1"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/test"
)

func assignSerials(suite *TestSuiteStandard, query string, status int) v1.AssignSerialsResponse {
	r := test.Request(suite.T(), http.MethodPost, baseURL+"/serials/assign"+query, nil)
	test.AssertHTTPStatus(suite.T(), &r, status)

	var response v1.AssignSerialsResponse
	if status == http.StatusOK {
		test.DecodeResponse(suite.T(), &r, &response)
	}
	return response
}

func (suite *TestSuiteStandard) TestAssignSerialsGlob() {
	for _, number := range []string{"A-1", "A-2", "A-3"} {
		createFlat(suite.T(), number)
	}
	event := create[models.Event](suite.T(), "/events", map[string]any{"amount": "2000"})

	response := assignSerials(suite, "?model=fl*", http.StatusOK)
	suite.Assert().Equal(map[string]int{"flats": 3}, response.Assigned)

	r := test.Request(suite.T(), http.MethodGet, baseURL+"/flats", nil)
	var flats v1.ListResponse[models.Flat]
	test.DecodeResponse(suite.T(), &r, &flats)

	seen := map[int]bool{}
	for _, f := range flats.Data {
		suite.Require().NotNil(f.SerialNumber)
		suite.Assert().GreaterOrEqual(*f.SerialNumber, 10000)
		suite.Assert().LessOrEqual(*f.SerialNumber, 99999)
		suite.Assert().False(seen[*f.SerialNumber], "serial %d assigned twice", *f.SerialNumber)
		seen[*f.SerialNumber] = true
	}

	got := fetch[models.Event](suite.T(), "/events/"+event.ID.String())
	suite.Assert().Nil(got.SerialNumber)
}

func (suite *TestSuiteStandard) TestAssignSerialsKeepsExisting() {
	flat := createFlat(suite.T(), "A-1")
	createFlat(suite.T(), "A-2")

	first := assignSerials(suite, "", http.StatusOK)
	suite.Assert().Equal(map[string]int{
		"events":                0,
		"flats":                 2,
		"employees":             0,
		"electricityBills":      0,
		"shops":                 0,
		"miscellaneousExpenses": 0,
	}, first.Assigned)

	serial := fetch[models.Flat](suite.T(), "/flats/"+flat.ID.String()).SerialNumber
	suite.Require().NotNil(serial)

	createFlat(suite.T(), "A-3")
	second := assignSerials(suite, "?model=flats", http.StatusOK)
	suite.Assert().Equal(map[string]int{"flats": 1}, second.Assigned)

	again := fetch[models.Flat](suite.T(), "/flats/"+flat.ID.String()).SerialNumber
	suite.Assert().Equal(*serial, *again)
}

func (suite *TestSuiteStandard) TestAssignSerialsNoMatch() {
	r := test.Request(suite.T(), http.MethodPost, baseURL+"/serials/assign?model=parking*", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Equal("the model pattern does not match any collection", test.DecodeError(suite.T(), r.Body.Bytes()))
}
