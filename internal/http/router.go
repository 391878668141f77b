package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/you/storeadmin/internal/http/handlers"
	"github.com/you/storeadmin/internal/http/middleware"
)

// RouterConfig holds the cross-cutting settings of the HTTP surface
type RouterConfig struct {
	ServiceName    string
	AllowedOrigins []string
	// ShuttingDown makes /ready fail once shutdown has started
	ShuttingDown func() bool
}

// Handlers groups the request handlers served under /api
type Handlers struct {
	Auth       *handlers.AuthHandlers
	Customers  *handlers.CustomerHandlers
	Products   *handlers.ProductHandlers
	Categories *handlers.CategoryHandlers
}

func BuildRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/ready", func(c *gin.Context) {
		if cfg.ShuttingDown != nil && cfg.ShuttingDown() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api").Use(middleware.TabMiddleware())

	api.POST("/auth/hydrate", h.Auth.Hydrate)
	api.POST("/auth/sign-in", h.Auth.SignIn)
	api.POST("/auth/sign-up", h.Auth.SignUp)
	api.POST("/auth/sign-out", h.Auth.SignOut)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/oauth", h.Auth.OAuth)
	api.GET("/auth/session", h.Auth.Session)

	api.GET("/customers", h.Customers.List)
	api.POST("/customers/refresh", h.Customers.Refresh)
	api.PUT("/customers/query", h.Customers.SetQuery)
	api.POST("/customers/selection", h.Customers.Select)
	api.POST("/customers/selection/all", h.Customers.SelectAll)
	api.POST("/customers", h.Customers.Create)
	api.PUT("/customers/:id", h.Customers.Update)
	api.DELETE("/customers/:id", h.Customers.Delete)

	api.GET("/products", h.Products.List)
	api.POST("/products/refresh", h.Products.Refresh)
	api.PUT("/products/query", h.Products.SetQuery)
	api.PUT("/products/filter", h.Products.SetFilter)
	api.POST("/products/selection", h.Products.Select)
	api.POST("/products/selection/all", h.Products.SelectAll)
	api.POST("/products", h.Products.Create)
	api.GET("/products/:id", h.Products.Get)
	api.PUT("/products/:id", h.Products.Update)
	api.DELETE("/products/:id", h.Products.Delete)

	api.GET("/categories", h.Categories.List)

	return r
}
