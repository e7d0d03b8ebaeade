package httputil

import (
	"errors"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// RequestHost returns the scheme, host and prefix the client used to reach
// the backend.
//
// Behind a reverse proxy that sets x-forwarded-host, the x-forwarded-prefix
// header is used as prefix, falling back to "/api".
func RequestHost(c *gin.Context) string {
	scheme := "http"
	if c.Request.Header.Get("x-forwarded-proto") == "https" {
		scheme = "https"
	}

	host := c.Request.Host
	var prefix string

	if forwarded := c.Request.Header.Get("x-forwarded-host"); forwarded != "" {
		host = forwarded

		prefix = c.Request.Header.Get("x-forwarded-prefix")
		if prefix == "" {
			prefix = "/api"
		}
	}

	return scheme + "://" + host + prefix
}

// RequestPathV1 returns the URL with the prefix for API v1.
func RequestPathV1(c *gin.Context) string {
	return RequestHost(c) + "/v1"
}

// RequestURL returns the full request URL.
func RequestURL(c *gin.Context) string {
	return RequestHost(c) + c.Request.URL.Path
}

// BindData binds the JSON body of the request to data.
func BindData(c *gin.Context, data any) error {
	err := c.ShouldBindJSON(data)
	if errors.Is(err, io.EOF) {
		return ErrRequestBodyEmpty
	}

	if err != nil {
		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// Flag reports whether the query parameter name is the literal string "true".
// Any other value, including "1" or "TRUE", is false.
func Flag(c *gin.Context, names ...string) bool {
	for _, name := range names {
		if c.Query(name) == "true" {
			return true
		}
	}
	return false
}
