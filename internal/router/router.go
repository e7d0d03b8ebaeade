package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/logger"
	"github.com/gin-contrib/pprof"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	docs "github.com/towerledger/backend/api"
	"github.com/towerledger/backend/internal/auth"
	"github.com/towerledger/backend/internal/config"
	"github.com/towerledger/backend/internal/controllers/healthz"
	v1 "github.com/towerledger/backend/internal/controllers/v1"
	"github.com/towerledger/backend/internal/httputil"
	"github.com/towerledger/backend/internal/models"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

// Config sets up the router with all middlewares. The returned teardown
// function must be called when the router is not used anymore.
func Config(cfg config.Config) (*gin.Engine, func(), error) {
	if cfg.APIURL == nil {
		return nil, func() {}, config.ErrAPIURLMissing
	}

	err := registerPrometheusMetrics()
	if err != nil {
		unregisterPrometheusMetrics()
		return nil, func() {}, err
	}

	teardown := func() {
		unregisterPrometheusMetrics()
	}

	r := gin.New()

	// Don’t process X-Forwarded-For header as we do not do anything with
	// client IPs
	r.ForwardedByClientIP = false

	// Send a HTTP 405 (Method not allowed) for all paths where there is
	// a handler, but not for the specific method used
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(requestid.New())
	r.Use(URLMiddleware(cfg.APIURL))
	r.Use(MetricsMiddleware())
	r.Use(logger.SetLogger(
		logger.WithDefaultLevel(zerolog.InfoLevel),
		logger.WithClientErrorLevel(zerolog.InfoLevel),
		logger.WithServerErrorLevel(zerolog.ErrorLevel),
		logger.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			return l.With().
				Str("request-id", requestid.Get(c)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Int("status", c.Writer.Status()).
				Int("size", c.Writer.Size()).
				Str("user-agent", c.Request.UserAgent()).
				Logger()
		})))

	if len(cfg.CORSAllowOrigins) > 0 {
		log.Debug().Strs("allowOrigins", cfg.CORSAllowOrigins).Msg("CORS")

		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowOrigins,
			AllowMethods:     []string{"OPTIONS", "GET", "POST", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", auth.HeaderToken},
			AllowCredentials: true,
		}))
	}

	// Disable the gin debug route printing as it clutters logs (and test logs)
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {}

	// Don’t trust any proxy. We do not process any client IPs,
	// therefore we don’t need to trust anyone here.
	_ = r.SetTrustedProxies([]string{})

	log.Debug().Str("API Base URL", cfg.APIURL.String()).Str("Host", cfg.APIURL.Host).Str("Path", cfg.APIURL.Path).Msg("Router")
	log.Info().Str("version", version).Msg("Router")

	docs.SwaggerInfo.Host = cfg.APIURL.Host
	docs.SwaggerInfo.BasePath = cfg.APIURL.Path
	docs.SwaggerInfo.Title = "Tower Ledger"
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Description = "The backend for Tower Ledger, the books of a residential building: maintenance, salaries, electricity and monthly closing balances."

	return r, teardown, nil
}

// AttachRoutes attaches the API routes to the router group that is passed in.
func AttachRoutes(group *gin.RouterGroup, cfg config.Config) {
	co := v1.New(models.DB, cfg.Zone, auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL), version)

	group.GET("", GetRoot)
	group.OPTIONS("", OptionsRoot)
	group.GET("/version", GetVersion)
	group.OPTIONS("/version", OptionsVersion)
	group.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthz.RegisterRoutes(group.Group("/healthz"))

	if cfg.EnablePprof {
		pprof.RouteRegister(group, "debug/pprof")
	}

	group.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 setup
	v1Group := group.Group("/v1")
	v1.RegisterAuthRoutes(v1Group.Group("/auth"), co)

	protected := v1Group.Group("", auth.Middleware(co.Tokens))
	{
		protected.GET("", GetV1)
		protected.OPTIONS("", OptionsV1)
	}

	v1.RegisterAutomationRoutes(protected.Group("/auto"), co)
	v1.RegisterMonthCloseRoutes(protected.Group("/month-close"), co)
	v1.RegisterFlatRoutes(protected.Group("/flats"), co)
	v1.RegisterShopRoutes(protected.Group("/shops"), co)
	v1.RegisterEmployeeRoutes(protected.Group("/employees"), co)
	v1.RegisterMaintenanceRoutes(protected.Group("/maintenance"), co)
	v1.RegisterShopMaintenanceRoutes(protected.Group("/shop-maintenance"), co)
	v1.RegisterSalaryRoutes(protected.Group("/salaries"), co)
	v1.RegisterCustomHeaderRoutes(protected.Group("/custom-headers"), co)
	v1.RegisterSubHeaderRoutes(protected.Group("/sub-headers"), co)
	v1.RegisterCustomHeaderRecordRoutes(protected.Group("/custom-header-records"), co)
	v1.RegisterElectricityBillRoutes(protected.Group("/electricity-bills"), co)
	v1.RegisterLoanRoutes(protected.Group("/loans"), co)
	v1.RegisterMiscellaneousExpenseRoutes(protected.Group("/miscellaneous-expenses"), co)
	v1.RegisterEventRoutes(protected.Group("/events"), co)
	v1.RegisterUserRoutes(protected.Group("/users"), co)
	v1.RegisterManagerRoutes(protected.Group("/managers"), co)
	v1.RegisterReceiptRoutes(protected.Group("/receipts"), co)
	v1.RegisterSerialRoutes(protected.Group("/serials"), co)
	v1.RegisterExportRoutes(protected.Group("/export"), co)
}

type RootResponse struct {
	Links RootLinks `json:"links"`
}

type RootLinks struct {
	Docs    string `json:"docs" example:"https://example.com/api/docs/index.html"` // Swagger API documentation
	Healthz string `json:"healthz" example:"https://example.com/api/healthz"`      // Healthz endpoint
	Version string `json:"version" example:"https://example.com/api/version"`      // Endpoint returning the version of the backend
	Metrics string `json:"metrics" example:"https://example.com/api/metrics"`      // Endpoint returning the Prometheus metrics
	V1      string `json:"v1" example:"https://example.com/api/v1"`                // List endpoint for all v1 endpoints
}

// @Summary		API root
// @Description	Entrypoint for the API, listing all endpoints
// @Tags			General
// @Success		200	{object}	RootResponse
// @Router			/ [get]
func GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, RootResponse{
		Links: RootLinks{
			Docs:    url + "/docs/index.html",
			Healthz: url + "/healthz",
			Version: url + "/version",
			Metrics: url + "/metrics",
			V1:      url + "/v1",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/ [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: version,
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}

type V1Response struct {
	Links V1Links `json:"links"` // Links for the v1 API
}

type V1Links struct {
	Flats                 string `json:"flats" example:"https://example.com/api/v1/flats"`
	Shops                 string `json:"shops" example:"https://example.com/api/v1/shops"`
	Employees             string `json:"employees" example:"https://example.com/api/v1/employees"`
	Maintenance           string `json:"maintenance" example:"https://example.com/api/v1/maintenance"`
	ShopMaintenance       string `json:"shopMaintenance" example:"https://example.com/api/v1/shop-maintenance"`
	Salaries              string `json:"salaries" example:"https://example.com/api/v1/salaries"`
	CustomHeaders         string `json:"customHeaders" example:"https://example.com/api/v1/custom-headers"`
	SubHeaders            string `json:"subHeaders" example:"https://example.com/api/v1/sub-headers"`
	CustomHeaderRecords   string `json:"customHeaderRecords" example:"https://example.com/api/v1/custom-header-records"`
	ElectricityBills      string `json:"electricityBills" example:"https://example.com/api/v1/electricity-bills"`
	Loans                 string `json:"loans" example:"https://example.com/api/v1/loans"`
	MiscellaneousExpenses string `json:"miscellaneousExpenses" example:"https://example.com/api/v1/miscellaneous-expenses"`
	Events                string `json:"events" example:"https://example.com/api/v1/events"`
	Users                 string `json:"users" example:"https://example.com/api/v1/users"`
	Managers              string `json:"managers" example:"https://example.com/api/v1/managers"`
	Receipts              string `json:"receipts" example:"https://example.com/api/v1/receipts"`
	MonthClose            string `json:"monthClose" example:"https://example.com/api/v1/month-close"`
	Automation            string `json:"automation" example:"https://example.com/api/v1/auto"`
	Export                string `json:"export" example:"https://example.com/api/v1/export"`
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL)) + "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Flats:                 url + "/flats",
			Shops:                 url + "/shops",
			Employees:             url + "/employees",
			Maintenance:           url + "/maintenance",
			ShopMaintenance:       url + "/shop-maintenance",
			Salaries:              url + "/salaries",
			CustomHeaders:         url + "/custom-headers",
			SubHeaders:            url + "/sub-headers",
			CustomHeaderRecords:   url + "/custom-header-records",
			ElectricityBills:      url + "/electricity-bills",
			Loans:                 url + "/loans",
			MiscellaneousExpenses: url + "/miscellaneous-expenses",
			Events:                url + "/events",
			Users:                 url + "/users",
			Managers:              url + "/managers",
			Receipts:              url + "/receipts",
			MonthClose:            url + "/month-close",
			Automation:            url + "/auto",
			Export:                url + "/export",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	httputil.OptionsGet(c)
}
