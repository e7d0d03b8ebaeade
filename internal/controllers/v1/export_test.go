package v1_test

import (
	"encoding/json"
	"net/http"

	v1 "github.com/towerledger/backend/internal/controllers/v1"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/test"
)

func (suite *TestSuiteStandard) TestExport() {
	flat := createFlat(suite.T(), "A-12")
	createFlat(suite.T(), "A-14")

	r := test.Request(suite.T(), http.MethodGet, baseURL+"/export", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("0.0.0", response.Version)
	suite.Assert().False(response.CreationTime.IsZero())
	suite.Assert().Len(response.Data, len(models.Registry))

	var flats []models.Flat
	suite.Require().Nil(json.Unmarshal(response.Data["Flat"], &flats))
	suite.Require().Len(flats, 2)
	suite.Assert().Equal(flat.ID, flats[0].ID)

	var receipts []models.Receipt
	suite.Require().Nil(json.Unmarshal(response.Data["Receipt"], &receipts))
	suite.Assert().Len(receipts, 0)
}
