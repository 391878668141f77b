package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/you/storeadmin/domain"
	"github.com/you/storeadmin/internal/config"
	httpx "github.com/you/storeadmin/internal/http"
	"github.com/you/storeadmin/internal/http/handlers"
	"github.com/you/storeadmin/internal/http/middleware"
	"github.com/you/storeadmin/internal/infrastructure/api"
	"github.com/you/storeadmin/internal/infrastructure/auth"
	"github.com/you/storeadmin/internal/infrastructure/cache"
	"github.com/you/storeadmin/internal/infrastructure/database"
	"github.com/you/storeadmin/internal/infrastructure/events"
	"github.com/you/storeadmin/internal/infrastructure/repositories"
	"github.com/you/storeadmin/internal/services"
)

// cacheKeyPrefix namespaces query cache entries in a shared Redis
const cacheKeyPrefix = "storeadmin:cache:"

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	RedisClient *redis.Client
	TokenStore  domain.TokenStore
	CacheStore  domain.CacheStore
	EventBus    domain.EventBus
	APIClient   *api.Client
	QueryCache  *cache.QueryCacheImpl
	Navigator   domain.Navigator

	// Services
	Sessions     *services.SessionRegistry
	AuthSvc      *services.AuthServiceImpl
	CustomerList *services.CustomerListService
	ProductList  *services.ProductListService
	Categories   domain.CategoryService
	CustomerActs domain.CustomerActions
	ProductActs  domain.ProductActions
	CustomerForm domain.CustomerForm
	ProductForm  domain.ProductForm
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initRedis(ctx); err != nil {
		return nil, err
	}
	container.initInfrastructure()
	container.initServices()

	return container, nil
}

func (c *Container) initRedis(ctx context.Context) error {
	if !c.Config.UsesRedis() {
		return nil
	}

	client := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := client.Ping(ctx); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.RedisClient = client.Client
	log.Info().Str("addr", c.Config.RedisAddr).Msg("Redis connection established")
	return nil
}

func (c *Container) initInfrastructure() {
	if c.Config.SessionStore == "redis" {
		c.TokenStore = repositories.NewTokenRepository(c.RedisClient, c.Config.SessionTTL)
	} else {
		c.TokenStore = repositories.NewMemoryTokenRepository()
	}

	if c.Config.CacheStore == "redis" {
		c.CacheStore = cache.NewRedisStore(c.RedisClient, cacheKeyPrefix)
	} else {
		c.CacheStore = cache.NewMemoryStore()
	}

	if c.Config.EventBus == "redis" {
		c.EventBus = events.NewRedisBus(c.RedisClient, c.Config.EventChannelPrefix)
	} else {
		c.EventBus = events.NewMemoryBus()
	}

	interceptor := api.NewInterceptor(c.TokenStore, c.Config.AuthHeader, c.Config.PublicEndpoints)
	c.APIClient = api.NewClient(c.Config.APIBaseURL, c.Config.APITimeout, interceptor)
	c.QueryCache = cache.NewQueryCache(c.CacheStore, c.Config.CacheTTL, c.Config.CacheDedupeInterval)
	c.Navigator = middleware.NewRequestNavigator()

	log.Info().
		Str("session_store", c.Config.SessionStore).
		Str("cache_store", c.Config.CacheStore).
		Str("event_bus", c.Config.EventBus).
		Str("api_base_url", c.Config.APIBaseURL).
		Msg("Infrastructure initialized")
}

func (c *Container) initServices() {
	idleTTL := c.Config.SessionIdleTTL

	c.Sessions = services.NewSessionRegistry(idleTTL)
	c.AuthSvc = services.NewAuthService(
		c.APIClient,
		c.TokenStore,
		c.Navigator,
		auth.NewTokenInspector(),
		c.Sessions,
		services.AuthConfig{
			AuthenticatedEntryPath:   c.Config.AuthenticatedEntryPath,
			UnauthenticatedEntryPath: c.Config.UnauthenticatedEntryPath,
		},
	)

	c.CustomerList = services.NewCustomerListService(c.APIClient, c.QueryCache, idleTTL)
	c.ProductList = services.NewProductListService(c.APIClient, c.QueryCache, idleTTL)
	c.Categories = services.NewCategoryService(c.APIClient, c.QueryCache)

	c.CustomerActs = services.NewCustomerActions(c.APIClient, c.QueryCache, c.Navigator)
	c.ProductActs = services.NewProductActions(c.APIClient, c.QueryCache, c.EventBus, c.Navigator)
	c.CustomerForm = services.NewCustomerForm(c.CustomerActs)
	c.ProductForm = services.NewProductForm(c.ProductActs)
}

// Handlers builds the HTTP handlers over the container's services
func (c *Container) Handlers() httpx.Handlers {
	return httpx.Handlers{
		Auth:       handlers.NewAuthHandlers(c.AuthSvc, c.Config.RedirectParam),
		Customers:  handlers.NewCustomerHandlers(c.CustomerList, c.CustomerActs, c.CustomerForm),
		Products:   handlers.NewProductHandlers(c.ProductList, c.ProductActs, c.ProductForm),
		Categories: handlers.NewCategoryHandlers(c.Categories, c.Config.CategoryLimit),
	}
}

// Sweepers lists every per-tab registry that must be swept for idle tabs
func (c *Container) Sweepers() []services.Sweeper {
	return []services.Sweeper{c.Sessions, c.CustomerList, c.ProductList}
}

// Close closes all connections
func (c *Container) Close() error {
	c.ProductList.Close()

	var firstErr error
	if c.EventBus != nil {
		if err := c.EventBus.Close(); err != nil {
			firstErr = err
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
