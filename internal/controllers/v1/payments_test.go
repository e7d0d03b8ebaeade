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

func (suite *TestSuiteStandard) TestPayElectricityBill() {
	bill := create[models.ElectricityBill](suite.T(), "/electricity-bills", map[string]any{
		"consumerNumber": "04117123456",
		"billRecord": map[string]any{
			"monthlyBill":    "8000",
			"monthlyPayable": "10000",
		},
	})

	tests := []struct {
		amount  string
		payable string
		paid    string
	}{
		{"3000", "7000", "3000"},
		// Capped at the payable
		{"9000", "0", "10000"},
		{"500", "0", "10000"},
	}

	for _, tt := range tests {
		r := test.Request(suite.T(), http.MethodPost, baseURL+"/electricity-bills/"+bill.ID.String()+"/pay", v1.AmountBody{Amount: decimalOf(tt.amount)})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var response v1.Response[models.ElectricityBill]
		test.DecodeResponse(suite.T(), &r, &response)
		assertDecimal(suite.T(), tt.payable, response.Data.BillRecord.MonthlyPayable, tt.amount)
		assertDecimal(suite.T(), tt.paid, response.Data.BillRecord.PaidAmount, tt.amount)
	}

	got := fetch[models.ElectricityBill](suite.T(), "/electricity-bills/"+bill.ID.String())
	assertDecimal(suite.T(), "0", got.BillRecord.MonthlyPayable)
	assertDecimal(suite.T(), "10000", got.BillRecord.PaidAmount)
	assertDecimal(suite.T(), "8000", got.BillRecord.MonthlyBill)
}

func (suite *TestSuiteStandard) TestReceiveEvent() {
	event := create[models.Event](suite.T(), "/events", map[string]any{
		"givenFrom": "Flat A-12",
		"event":     "Independence day",
		"amount":    "2000",
	})

	r := test.Request(suite.T(), http.MethodPost, baseURL+"/events/"+event.ID.String()+"/receive", map[string]any{"amount": "1500"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, baseURL+"/events/"+event.ID.String()+"/receive", map[string]any{"amount": "1500"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	got := fetch[models.Event](suite.T(), "/events/"+event.ID.String())
	assertDecimal(suite.T(), "0", got.Amount)
	assertDecimal(suite.T(), "2000", got.PaidAmount)
	suite.Assert().Equal("Independence day", got.Title)
}

func (suite *TestSuiteStandard) TestPayMiscellaneousExpense() {
	expense := create[models.MiscellaneousExpense](suite.T(), "/miscellaneous-expenses", map[string]any{
		"givenTo":  "City Plumbing",
		"lineItem": "Water pump repair",
		"amount":   "100",
	})

	tests := []struct {
		amount    string
		remaining string
		paid      string
	}{
		{"40", "60", "40"},
		// Capped at what is still owed
		{"90", "0", "100"},
		{"10", "0", "100"},
	}

	for _, tt := range tests {
		r := test.Request(suite.T(), http.MethodPost, baseURL+"/miscellaneous-expenses/"+expense.ID.String()+"/pay", map[string]any{"amount": tt.amount})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var response v1.Response[models.MiscellaneousExpense]
		test.DecodeResponse(suite.T(), &r, &response)
		assertDecimal(suite.T(), tt.remaining, response.Data.Amount, tt.amount)
		assertDecimal(suite.T(), tt.paid, response.Data.PaidAmount, tt.amount)
	}

	got := fetch[models.MiscellaneousExpense](suite.T(), "/miscellaneous-expenses/"+expense.ID.String())
	assertDecimal(suite.T(), "0", got.Amount)
	assertDecimal(suite.T(), "100", got.PaidAmount)
	suite.Assert().Equal("Water pump repair", got.LineItem)
}

func (suite *TestSuiteStandard) TestPaymentErrors() {
	event := create[models.Event](suite.T(), "/events", map[string]any{"amount": "2000"})

	tests := []struct {
		name   string
		path   string
		body   any
		status int
	}{
		{"Negative amount", "/events/" + event.ID.String() + "/receive", map[string]any{"amount": "-5"}, http.StatusBadRequest},
		{"Zero amount", "/events/" + event.ID.String() + "/receive", map[string]any{"amount": "0"}, http.StatusBadRequest},
		{"No body", "/events/" + event.ID.String() + "/receive", "", http.StatusBadRequest},
		{"Unknown event", "/events/" + uuid.NewString() + "/receive", map[string]any{"amount": "5"}, http.StatusNotFound},
		{"Unknown bill", "/electricity-bills/" + uuid.NewString() + "/pay", map[string]any{"amount": "5"}, http.StatusNotFound},
		{"Unknown expense", "/miscellaneous-expenses/" + uuid.NewString() + "/pay", map[string]any{"amount": "5"}, http.StatusNotFound},
		{"Invalid ID", "/electricity-bills/bill/pay", map[string]any{"amount": "5"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, baseURL+tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	got := fetch[models.Event](suite.T(), "/events/"+event.ID.String())
	assert.True(suite.T(), got.PaidAmount.IsZero())
}
