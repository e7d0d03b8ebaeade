package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/towerledger/backend/internal/balance"
	"github.com/towerledger/backend/internal/config"
	v1 "github.com/towerledger/backend/internal/controllers/v1"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/internal/types"
	"github.com/towerledger/backend/test"
)

func (suite *TestSuiteStandard) TestRunMonthCloseForced() {
	flat := createFlat(suite.T(), "A-12")
	createReceipt(suite.T(), map[string]any{
		"kind":           "Flat",
		"subjectId":      flat.ID.String(),
		"type":           "Received",
		"amount":         "3500",
		"dateOfCreation": "2020-01-10T10:00:00Z",
	})

	r := test.Request(suite.T(), http.MethodPost, baseURL+"/month-close/run?force=true", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var result balance.RunResult
	test.DecodeResponse(suite.T(), &r, &result)
	suite.Assert().True(result.Success)
	suite.Assert().True(result.RanMonthlySections)
	suite.Require().NotNil(result.Month)
	suite.Require().NotNil(result.ClosingBalance)

	// Receipts count from the time they were recorded, the backdated
	// receipt was recorded this month
	assertDecimal(suite.T(), "0", *result.ClosingBalance)

	previous, _ := types.NewZone(config.DefaultOffsetMinutes).PreviousMonth(time.Now())
	suite.Assert().Equal(previous.String(), result.Month.String())

	r = test.Request(suite.T(), http.MethodGet, baseURL+"/month-close?month="+previous.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthCloseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().NotNil(response.Data)
	suite.Assert().Equal(previous.String(), response.Data.Month.String())
	assertDecimal(suite.T(), "0", response.Data.ClosingBalance)
}

func (suite *TestSuiteStandard) TestRunMonthCloseDatabaseClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodPost, baseURL+"/month-close/run?force=true", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.TriggerError
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().False(response.Success)
	suite.Assert().Contains(response.Message, models.ErrGeneral.Error())
}

func (suite *TestSuiteStandard) TestGetMonthCloseMissing() {
	r := test.Request(suite.T(), http.MethodGet, baseURL+"/month-close?month=2025-10", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.MonthCloseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Nil(response.Data)
}

func (suite *TestSuiteStandard) TestMonthCloseBadQuery() {
	tests := []struct {
		path string
		err  string
	}{
		{"/month-close", "the month query parameter must be set"},
		{"/month-close?month=2025-13", types.ErrMonthFormat.Error()},
		{"/month-close?month=October", types.ErrMonthFormat.Error()},
		{"/month-close/previous", "the start query parameter must be set"},
		{"/month-close/previous?start=2025-11", types.ErrDateFormat.Error()},
		{"/month-close/previous?start=2025-02-30", types.ErrDateFormat.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, baseURL+tt.path, nil)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
			assert.Contains(t, test.DecodeError(t, r.Body.Bytes()), tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestPreviousMonthClose() {
	r := test.Request(suite.T(), http.MethodGet, baseURL+"/month-close/previous?start=2025-11-15", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.PreviousMonthCloseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("2025-10", response.Month.String())
	suite.Assert().Nil(response.Data)

	// January rolls back into the previous year
	r = test.Request(suite.T(), http.MethodGet, baseURL+"/month-close/previous?start=2026-01-01&forceCompute=true", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("2025-12", response.Month.String())
	suite.Require().NotNil(response.Data)
	assertDecimal(suite.T(), "0", response.Data.ClosingBalance)

	// The computed snapshot is stored
	r = test.Request(suite.T(), http.MethodGet, baseURL+"/month-close?month=2025-12", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var stored v1.MonthCloseResponse
	test.DecodeResponse(suite.T(), &r, &stored)
	suite.Require().NotNil(stored.Data)
	suite.Assert().Equal(response.Data.ID, stored.Data.ID)
}

func (suite *TestSuiteStandard) TestCurrentBalance() {
	event := create[models.Event](suite.T(), "/events", map[string]any{
		"givenFrom":  "Flat A-12",
		"event":      "Independence day",
		"amount":     "0",
		"paidAmount": "120",
	})

	create[models.MiscellaneousExpense](suite.T(), "/miscellaneous-expenses", map[string]any{
		"givenTo":    "City Plumbing",
		"lineItem":   "Water pump repair",
		"amount":     "80",
		"paidAmount": "80",
	})

	createReceipt(suite.T(), map[string]any{
		"kind":      "Events",
		"subjectId": event.ID.String(),
		"type":      "Received",
		"amount":    "120",
	})

	r := test.Request(suite.T(), http.MethodGet, baseURL+"/month-close/current-balance", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.CurrentBalanceResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assertDecimal(suite.T(), "120", response.Incoming)
	assertDecimal(suite.T(), "80", response.Expense)
	assertDecimal(suite.T(), "40", response.Balance)
	assertDecimal(suite.T(), "120", response.Ledger)
}
