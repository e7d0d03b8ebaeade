package test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/towerledger/backend/internal/auth"
	"github.com/towerledger/backend/internal/config"
	"github.com/towerledger/backend/internal/router"
	"github.com/towerledger/backend/internal/types"
)

// Secret is the token signing key of the test configuration.
const Secret = "test-secret"

// Config returns the configuration the router is set up with in tests.
func Config() config.Config {
	baseURL, _ := url.Parse("http://example.com")

	return config.Config{
		APIURL:    baseURL,
		JWTSecret: Secret,
		JWTTTL:    time.Hour,
		Zone:      types.NewZone(config.DefaultOffsetMinutes),
	}
}

// Token returns a valid token for the test configuration.
func Token(t *testing.T) string {
	token, err := auth.NewIssuer(Secret, time.Hour).Issue(uuid.New(), "test", auth.RoleAdmin)
	require.Nil(t, err)
	return token
}

// Request is a helper method to simplify making a HTTP request for tests.
//
// A valid token is sent in the auth-token header unless the headers
// passed in set it themselves, an empty value sends no token at all.
func Request(t *testing.T, method, reqURL string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
		reader = http.NoBody
	case string:
		reader = bytes.NewBufferString(b)
	case *bytes.Buffer:
		reader = b
	default:
		byteStr, err := json.Marshal(body)
		if err != nil {
			assert.FailNow(t, "Request body could not be marshalled from struct input", err)
		}
		reader = bytes.NewBuffer(byteStr)
	}

	r, teardown, err := router.Config(Config())
	defer teardown()

	if err != nil {
		assert.FailNow(t, "Router could not be initialized", err)
	}
	router.AttachRoutes(r.Group("/"), Config())

	recorder := httptest.NewRecorder()
	req, _ := http.NewRequest(method, reqURL, reader)
	req.Header.Set(auth.HeaderToken, Token(t))

	for _, headerMap := range headers {
		for header, value := range headerMap {
			if value == "" {
				req.Header.Del(header)
				continue
			}
			req.Header.Set(header, value)
		}
	}

	r.ServeHTTP(recorder, req)

	return *recorder
}

// DecodeResponse decodes an HTTP response into a target struct.
func DecodeResponse(t *testing.T, r *httptest.ResponseRecorder, target any) {
	err := json.Unmarshal(r.Body.Bytes(), &target)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse response from server %q into %v, '%v', Request ID: %s", r.Body, reflect.TypeOf(target), err, r.Result().Header.Get("x-request-id"))
	}
}

// DecodeError returns the error message of an error response body.
func DecodeError(t *testing.T, s []byte) string {
	var body struct {
		Error string `json:"error"`
	}

	err := json.Unmarshal(s, &body)
	if err != nil {
		assert.FailNow(t, "Parsing error", "Unable to parse error response %q: %v", s, err)
	}

	return body.Error
}

// AssertHTTPStatus verifies that the HTTP response status is correct
func AssertHTTPStatus(t *testing.T, r *httptest.ResponseRecorder, expectedStatus ...int) {
	require.Contains(t, expectedStatus, r.Code, "HTTP status is wrong. Request ID: '%s' Response body: %s", r.Result().Header.Get("x-request-id"), r.Body.String())
}
