package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/towerledger/backend/internal/controllers/v1"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/test"
)

func createReceipt(t *testing.T, body map[string]any) models.Receipt {
	return create[models.Receipt](t, "/receipts", body)
}

func listReceipts(t *testing.T, query string) v1.ListResponse[models.Receipt] {
	r := test.Request(t, http.MethodGet, baseURL+"/receipts"+query, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.ListResponse[models.Receipt]
	test.DecodeResponse(t, &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestCreateReceiptSerials() {
	flat := createFlat(suite.T(), "A-12")

	for i := int64(1); i <= 3; i++ {
		receipt := createReceipt(suite.T(), map[string]any{
			"kind":      "Flat",
			"subjectId": flat.ID.String(),
			"slug":      "maintenance-a-12",
			"type":      "Received",
			"amount":    "3500",
		})
		suite.Assert().Equal(i, receipt.SerialNumber)
		suite.Assert().False(receipt.DateOfCreation.IsZero())
	}
}

func (suite *TestSuiteStandard) TestCreateReceiptInvalid() {
	flat := createFlat(suite.T(), "A-12")

	tests := []struct {
		name   string
		body   map[string]any
		status int
		err    string
	}{
		{
			"Unknown kind",
			map[string]any{"kind": "Parking", "subjectId": flat.ID.String(), "type": "Received", "amount": "1"},
			http.StatusBadRequest,
			models.ErrReceiptKindInvalid.Error(),
		},
		{
			"Unknown type",
			map[string]any{"kind": "Flat", "subjectId": flat.ID.String(), "type": "Refund", "amount": "1"},
			http.StatusBadRequest,
			models.ErrReceiptTypeInvalid.Error(),
		},
		{
			"Zero amount",
			map[string]any{"kind": "Flat", "subjectId": flat.ID.String(), "type": "Received", "amount": "0"},
			http.StatusBadRequest,
			models.ErrAmountNotPositive.Error(),
		},
		{
			"Missing subject",
			map[string]any{"kind": "Shop", "subjectId": flat.ID.String(), "type": "Received", "amount": "1"},
			http.StatusNotFound,
			"there is no shop matching your query",
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, baseURL+"/receipts", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.Response[models.Receipt]
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)
			assert.Contains(t, *response.Error, tt.err)
		})
	}

	// Failed creations do not use up serial numbers
	receipt := createReceipt(suite.T(), map[string]any{
		"kind":      "Flat",
		"subjectId": flat.ID.String(),
		"type":      "Received",
		"amount":    "3500",
	})
	suite.Assert().Equal(int64(1), receipt.SerialNumber)
}

func (suite *TestSuiteStandard) TestGetReceiptsFilter() {
	flat := createFlat(suite.T(), "A-12")
	bill := create[models.ElectricityBill](suite.T(), "/electricity-bills", map[string]any{
		"consumerNumber": "04117123456",
	})

	receipts := []map[string]any{
		// Local time is UTC+05:00, this is still September 30
		{"kind": "Flat", "subjectId": flat.ID.String(), "type": "Received", "amount": "3500", "slug": "maintenance-a-12-2025-09", "dateOfCreation": "2025-09-30T18:00:00Z"},
		// October 1 01:00 local
		{"kind": "Flat", "subjectId": flat.ID.String(), "type": "Received", "amount": "3500", "slug": "maintenance-a-12-2025-10", "dateOfCreation": "2025-09-30T20:00:00Z"},
		{"kind": "ElectricityBill", "subjectId": bill.ID.String(), "type": "Paid", "amount": "8000", "slug": "electricity-04117123456-2025-10", "dateOfCreation": "2025-10-15T09:00:00Z"},
		// November 1 00:30 local
		{"kind": "Flat", "subjectId": flat.ID.String(), "type": "Received", "amount": "3500", "slug": "maintenance-a-12-2025-11", "dateOfCreation": "2025-10-31T19:30:00Z"},
	}
	for _, body := range receipts {
		createReceipt(suite.T(), body)
	}

	tests := []struct {
		query string
		slugs []string
	}{
		{"", []string{"maintenance-a-12-2025-11", "electricity-04117123456-2025-10", "maintenance-a-12-2025-10", "maintenance-a-12-2025-09"}},
		{"?from=2025-10-01&to=2025-10-31", []string{"electricity-04117123456-2025-10", "maintenance-a-12-2025-10"}},
		{"?to=2025-09-30", []string{"maintenance-a-12-2025-09"}},
		{"?from=2025-11-01", []string{"maintenance-a-12-2025-11"}},
		{"?type=Paid", []string{"electricity-04117123456-2025-10"}},
		{"?kind=Flat&limit=2", []string{"maintenance-a-12-2025-11", "maintenance-a-12-2025-10"}},
		{"?q=a-12", []string{"maintenance-a-12-2025-11", "maintenance-a-12-2025-10", "maintenance-a-12-2025-09"}},
		{"?slugExact=maintenance-a-12-2025-10", []string{"maintenance-a-12-2025-10"}},
		{"?slugExact=maintenance-a-12", []string{}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			response := listReceipts(t, tt.query)

			slugs := make([]string, 0, len(response.Data))
			for _, r := range response.Data {
				slugs = append(slugs, r.Slug)
			}
			assert.Equal(t, tt.slugs, slugs)
		})
	}

	response := listReceipts(suite.T(), "?kind=Flat&limit=2")
	suite.Assert().Equal(int64(3), response.Pagination.Total)
	suite.Assert().Equal(2, response.Pagination.Count)
}

func (suite *TestSuiteStandard) TestGetReceiptsBadFilter() {
	for _, query := range []string{"?kind=Parking", "?type=Refund", "?from=yesterday", "?to=2025-10", "?limit=many"} {
		suite.T().Run(query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, baseURL+"/receipts"+query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestGetDeleteReceipt() {
	flat := createFlat(suite.T(), "A-12")
	receipt := createReceipt(suite.T(), map[string]any{
		"kind":      "Flat",
		"subjectId": flat.ID.String(),
		"type":      "Received",
		"amount":    "3500",
	})

	got := fetch[models.Receipt](suite.T(), "/receipts/"+receipt.ID.String())
	suite.Assert().Equal(flat.ID, got.SubjectID)
	assertDecimal(suite.T(), "3500", got.Amount)

	r := test.Request(suite.T(), http.MethodOptions, baseURL+"/receipts/"+receipt.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, DELETE", r.Header().Get("allow"))

	// Receipts cannot be edited
	r = test.Request(suite.T(), http.MethodPatch, baseURL+"/receipts/"+receipt.ID.String(), map[string]any{"amount": "1"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusMethodNotAllowed)

	r = test.Request(suite.T(), http.MethodDelete, baseURL+"/receipts/"+receipt.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, baseURL+"/receipts/"+uuid.NewString(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestBackfillReceiptSerials() {
	flat := createFlat(suite.T(), "A-12")
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		receipt := createReceipt(suite.T(), map[string]any{
			"kind":      "Flat",
			"subjectId": flat.ID.String(),
			"type":      "Received",
			"amount":    "3500",
		})
		ids = append(ids, receipt.ID)
	}

	// Scramble the serials
	suite.Require().Nil(models.DB.Model(&models.Receipt{}).Where("id = ?", ids[0]).Update("serial_number", 900).Error)
	suite.Require().Nil(models.DB.Model(&models.Receipt{}).Where("id = ?", ids[2]).Update("serial_number", 17).Error)

	r := test.Request(suite.T(), http.MethodPost, baseURL+"/receipts/backfill-serials", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.BackfillResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(int64(3), response.Updated)

	for i, id := range ids {
		got := fetch[models.Receipt](suite.T(), "/receipts/"+id.String())
		suite.Assert().Equal(int64(i+1), got.SerialNumber)
	}

	// The counter continues after the renumbered receipts
	receipt := createReceipt(suite.T(), map[string]any{
		"kind":      "Flat",
		"subjectId": flat.ID.String(),
		"type":      "Received",
		"amount":    "3500",
	})
	suite.Assert().Equal(int64(4), receipt.SerialNumber)
}
