package v1_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/towerledger/backend/internal/controllers/v1"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"
	"github.com/towerledger/backend/test"
)

func createFlat(t *testing.T, number string) models.Flat {
	return create[models.Flat](t, "/flats", map[string]any{
		"flatNumber": number,
		"ownerName":  "Ahmed Raza",
		"maintenanceRecord": map[string]any{
			"monthlyMaintenance": "3500",
		},
	})
}

func (suite *TestSuiteStandard) TestFlatsCreateGet() {
	flat := createFlat(suite.T(), "A-12")
	suite.Assert().NotEqual(uuid.Nil, flat.ID)
	suite.Assert().Equal(models.ActiveOwner, flat.ActiveStatus)
	suite.Assert().Nil(flat.SerialNumber)

	got := fetch[models.Flat](suite.T(), "/flats/"+flat.ID.String())
	suite.Assert().Equal("A-12", got.FlatNumber)
	suite.Assert().Equal("Ahmed Raza", got.OwnerName)
	assertDecimal(suite.T(), "3500", got.MaintenanceRecord.MonthlyMaintenance)
}

func (suite *TestSuiteStandard) TestCreateIgnoresIdentity() {
	id := uuid.New()
	flat := create[models.Flat](suite.T(), "/flats", map[string]any{
		"id":         id.String(),
		"flatNumber": "B-1",
	})

	suite.Assert().NotEqual(id, flat.ID)
}

func (suite *TestSuiteStandard) TestCreateBadBody() {
	tests := []struct {
		name string
		body any
		err  error
	}{
		{"Empty", "", httputil.ErrRequestBodyEmpty},
		{"Broken JSON", `{"flatNumber": "A-12"`, httputil.ErrInvalidBody},
		{"Wrong type", `{"flatNumber": 12}`, httputil.ErrInvalidBody},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, baseURL+"/flats", tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.Response[models.Flat]
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)
			assert.Equal(t, tt.err.Error(), *response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestGetErrors() {
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"Invalid UUID", "/flats/not-a-uuid", http.StatusBadRequest},
		{"Unknown ID", "/flats/" + uuid.NewString(), http.StatusNotFound},
		{"Unknown employee", "/employees/" + uuid.NewString(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete, http.MethodOptions} {
				r := test.Request(t, method, baseURL+tt.path, `{}`)
				test.AssertHTTPStatus(t, &r, tt.status)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestNotFoundMessage() {
	r := test.Request(suite.T(), http.MethodGet, baseURL+"/electricity-bills/"+uuid.NewString(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	var response v1.Response[models.ElectricityBill]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("there is no electricity bill matching your query", *response.Error)
}

func (suite *TestSuiteStandard) TestUpdatePartial() {
	flat := createFlat(suite.T(), "A-12")

	r := test.Request(suite.T(), http.MethodPatch, baseURL+"/flats/"+flat.ID.String(), map[string]any{
		"tenantName":   "Sara Malik",
		"activeStatus": "Tenant",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	got := fetch[models.Flat](suite.T(), "/flats/"+flat.ID.String())
	suite.Assert().Equal("A-12", got.FlatNumber)
	suite.Assert().Equal("Ahmed Raza", got.OwnerName)
	suite.Assert().Equal("Sara Malik", got.TenantName)
	suite.Assert().Equal(models.ActiveTenant, got.ActiveStatus)
	assertDecimal(suite.T(), "3500", got.MaintenanceRecord.MonthlyMaintenance)
}

func (suite *TestSuiteStandard) TestUpdateKeepsIdentity() {
	flat := createFlat(suite.T(), "A-12")

	r := test.Request(suite.T(), http.MethodPatch, baseURL+"/flats/"+flat.ID.String(), map[string]any{
		"id":         uuid.NewString(),
		"flatNumber": "A-14",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response[models.Flat]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(flat.ID, response.Data.ID)
	suite.Assert().Equal("A-14", response.Data.FlatNumber)
}

func (suite *TestSuiteStandard) TestUpdateEmptyBody() {
	flat := createFlat(suite.T(), "A-12")

	r := test.Request(suite.T(), http.MethodPatch, baseURL+"/flats/"+flat.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestDelete() {
	flat := createFlat(suite.T(), "A-12")

	r := test.Request(suite.T(), http.MethodDelete, baseURL+"/flats/"+flat.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, baseURL+"/flats/"+flat.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestListPagination() {
	for _, number := range []string{"A-1", "A-2", "A-3"} {
		createFlat(suite.T(), number)
	}

	tests := []struct {
		query  string
		count  int
		total  int64
		limit  int
		offset uint
		first  string
	}{
		{"", 3, 3, 50, 0, "A-1"},
		{"?limit=2", 2, 3, 2, 0, "A-1"},
		{"?offset=2", 1, 3, 50, 2, "A-3"},
		{"?offset=1&limit=1", 1, 3, 1, 1, "A-2"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.query, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, baseURL+"/flats"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.ListResponse[models.Flat]
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, tt.count)
			assert.Equal(t, tt.first, response.Data[0].FlatNumber)
			assert.Equal(t, tt.count, response.Pagination.Count)
			assert.Equal(t, tt.total, response.Pagination.Total)
			assert.Equal(t, tt.limit, response.Pagination.Limit)
			assert.Equal(t, tt.offset, response.Pagination.Offset)
		})
	}
}

func (suite *TestSuiteStandard) TestListEmpty() {
	r := test.Request(suite.T(), http.MethodGet, baseURL+"/loans", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Body.String(), `"data":[]`)
}

func (suite *TestSuiteStandard) TestListBadQuery() {
	r := test.Request(suite.T(), http.MethodGet, baseURL+"/flats?offset=-1", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestReferenceMissing() {
	tests := []struct {
		path string
		body map[string]any
	}{
		{"/maintenance", map[string]any{"flatId": uuid.NewString(), "maintenanceAmount": "3500"}},
		{"/shop-maintenance", map[string]any{"shopId": uuid.NewString(), "maintenanceAmount": "5000"}},
		{"/salaries", map[string]any{"employeeId": uuid.NewString(), "amount": "45000"}},
		{"/sub-headers", map[string]any{"headerId": uuid.NewString(), "name": "Diesel"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, baseURL+tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response struct {
				Error string `json:"error"`
			}
			test.DecodeResponse(t, &r, &response)
			assert.Equal(t, models.ErrReferenceMissing.Error(), response.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestOptions() {
	flat := createFlat(suite.T(), "A-12")

	tests := []struct {
		path  string
		allow string
	}{
		{"/flats", "OPTIONS, GET, POST"},
		{"/flats/" + flat.ID.String(), "OPTIONS, GET, PATCH, DELETE"},
		{"/auto/due-months", "OPTIONS, GET, POST"},
		{"/month-close", "OPTIONS, GET"},
		{"/month-close/run", "OPTIONS, POST"},
		{"/receipts/backfill-serials", "OPTIONS, POST"},
		{"/serials/assign", "OPTIONS, POST"},
		{"/export", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, http.MethodOptions, baseURL+tt.path, nil)
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}

func (suite *TestSuiteStandard) TestDatabaseClosed() {
	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/flats", nil},
		{http.MethodPost, "/flats", map[string]any{"flatNumber": "A-12"}},
		{http.MethodGet, "/flats/" + uuid.NewString(), nil},
		{http.MethodGet, "/receipts", nil},
		{http.MethodGet, "/month-close/current-balance", nil},
		{http.MethodGet, "/month-close?month=2025-10", nil},
		{http.MethodGet, "/export", nil},
	}

	suite.CloseDB()

	for _, tt := range tests {
		suite.T().Run(tt.method+" "+tt.path, func(t *testing.T) {
			r := test.Request(t, tt.method, baseURL+tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
			assert.Contains(t, r.Body.String(), models.ErrGeneral.Error())
		})
	}
}

func (suite *TestSuiteStandard) TestUnauthorized() {
	tests := []struct {
		name    string
		headers map[string]string
	}{
		{"No token", map[string]string{"auth-token": ""}},
		{"Garbage token", map[string]string{"auth-token": "garbage"}},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, baseURL+"/flats", nil, tt.headers)
			test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
		})
	}
}
