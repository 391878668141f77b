package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the config file is looked up when none is given
const DefaultPath = "config/config.yml"

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type APIConfig struct {
	BaseURL         string   `yaml:"base_url"`
	AuthHeader      string   `yaml:"auth_header"`
	Timeout         string   `yaml:"timeout"`
	PublicEndpoints []string `yaml:"public_endpoints"`
	CategoryLimit   int      `yaml:"category_limit"`
}

type AuthConfig struct {
	AuthenticatedEntryPath   string `yaml:"authenticated_entry_path"`
	UnauthenticatedEntryPath string `yaml:"unauthenticated_entry_path"`
	RedirectParam            string `yaml:"redirect_param"`
}

type SessionConfig struct {
	Store         string `yaml:"store"`
	TTL           string `yaml:"ttl"`
	IdleTTL       string `yaml:"idle_ttl"`
	SweepInterval string `yaml:"sweep_interval"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	Store          string `yaml:"store"`
	TTL            string `yaml:"ttl"`
	DedupeInterval string `yaml:"dedupe_interval"`
}

type EventsConfig struct {
	Bus           string `yaml:"bus"`
	ChannelPrefix string `yaml:"channel_prefix"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type TracingConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Endpoint   string  `yaml:"endpoint"`
	SampleRate float64 `yaml:"sample_rate"`
}

type ProfilingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

type ShutdownConfig struct {
	Timeout             string `yaml:"timeout"`
	ReadinessDrainDelay string `yaml:"readiness_drain_delay"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	API       APIConfig       `yaml:"api"`
	Auth      AuthConfig      `yaml:"auth"`
	Session   SessionConfig   `yaml:"session"`
	Redis     RedisConfig     `yaml:"redis"`
	Cache     CacheConfig     `yaml:"cache"`
	Events    EventsConfig    `yaml:"events"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Tracing   TracingConfig   `yaml:"tracing"`
	Profiling ProfilingConfig `yaml:"profiling"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
}

type Config struct {
	ServiceName    string
	ServiceVersion string
	Env            string
	Port           string
	GinMode        string

	APIBaseURL      string
	AuthHeader      string
	APITimeout      time.Duration
	PublicEndpoints []string
	CategoryLimit   int

	AuthenticatedEntryPath   string
	UnauthenticatedEntryPath string
	RedirectParam            string

	SessionStore         string
	SessionTTL           time.Duration
	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CacheStore          string
	CacheTTL            time.Duration
	CacheDedupeInterval time.Duration

	EventBus           string
	EventChannelPrefix string

	LogLevel  string
	LogFormat string

	AllowedOrigins []string

	TracingEnabled    bool
	TracingEndpoint   string
	TracingSampleRate float64

	ProfilingEnabled  bool
	ProfilingEndpoint string

	ShutdownTimeout     time.Duration
	ReadinessDrainDelay time.Duration
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Defaults returns the built-in configuration file contents
func Defaults() ConfigFile {
	return ConfigFile{
		App: AppConfig{Name: "storeadmin", Version: "dev", Env: "dev", Port: 8080, GinMode: "release"},
		API: APIConfig{
			BaseURL:         "https://api.escuelajs.co/api/v1",
			AuthHeader:      "Authorization",
			Timeout:         "0s",
			PublicEndpoints: []string{"/auth/login", "/sign-up", "/forgot-password", "/reset-password"},
			CategoryLimit:   10,
		},
		Auth: AuthConfig{
			AuthenticatedEntryPath:   "/home",
			UnauthenticatedEntryPath: "/",
			RedirectParam:            "redirectUrl",
		},
		Session:  SessionConfig{Store: "memory", TTL: "24h", IdleTTL: "2h", SweepInterval: "5m"},
		Redis:    RedisConfig{Addr: "localhost:6379"},
		Cache:    CacheConfig{Store: "memory", TTL: "5m", DedupeInterval: "2s"},
		Events:   EventsConfig{Bus: "memory", ChannelPrefix: "storeadmin:events:"},
		Log:      LogConfig{Level: "info", Format: "json"},
		CORS:     CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Tracing:  TracingConfig{Endpoint: "localhost:4318", SampleRate: 1.0},
		Shutdown: ShutdownConfig{Timeout: "10s", ReadinessDrainDelay: "0s"},
	}
}

// Load reads the config file at path (DefaultPath when empty), applies
// environment overrides and parses durations. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	configFile := Defaults()
	if err := loadConfigFile(path, &configFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyEnv(&configFile)
	return build(&configFile)
}

func loadConfigFile(path string, into *ConfigFile) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	if err := yaml.Unmarshal(bytes, into); err != nil {
		return fmt.Errorf("could not parse config yaml: %w", err)
	}
	return nil
}

func applyEnv(c *ConfigFile) {
	c.App.Env = env("APP_ENV", c.App.Env)
	c.App.Version = env("APP_VERSION", c.App.Version)
	c.App.Port = atoi(env("PORT", strconv.Itoa(c.App.Port)), c.App.Port)
	c.App.GinMode = env("GIN_MODE", c.App.GinMode)

	c.API.BaseURL = env("API_BASE_URL", c.API.BaseURL)
	c.API.AuthHeader = env("API_AUTH_HEADER", c.API.AuthHeader)
	c.API.Timeout = env("API_TIMEOUT", c.API.Timeout)

	c.Auth.AuthenticatedEntryPath = env("AUTHENTICATED_ENTRY_PATH", c.Auth.AuthenticatedEntryPath)

	c.Session.Store = env("SESSION_STORE", c.Session.Store)
	c.Redis.Addr = env("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = env("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = atoi(env("REDIS_DB", strconv.Itoa(c.Redis.DB)), c.Redis.DB)
	c.Cache.Store = env("CACHE_STORE", c.Cache.Store)
	c.Events.Bus = env("EVENT_BUS", c.Events.Bus)

	c.Log.Level = env("LOG_LEVEL", c.Log.Level)
	c.Log.Format = env("LOG_FORMAT", c.Log.Format)
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORS.AllowedOrigins = strings.Split(origins, ",")
	}

	c.Tracing.Enabled = env("TRACING_ENABLED", strconv.FormatBool(c.Tracing.Enabled)) == "true"
	c.Tracing.Endpoint = env("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.Endpoint)
	c.Profiling.Enabled = env("PROFILING_ENABLED", strconv.FormatBool(c.Profiling.Enabled)) == "true"
	c.Profiling.Endpoint = env("PYROSCOPE_ENDPOINT", c.Profiling.Endpoint)
}

func build(c *ConfigFile) (*Config, error) {
	durations := map[string]string{
		"api timeout":           c.API.Timeout,
		"session ttl":           c.Session.TTL,
		"session idle ttl":      c.Session.IdleTTL,
		"session sweep":         c.Session.SweepInterval,
		"cache ttl":             c.Cache.TTL,
		"cache dedupe":          c.Cache.DedupeInterval,
		"shutdown timeout":      c.Shutdown.Timeout,
		"readiness drain delay": c.Shutdown.ReadinessDrainDelay,
	}
	parsed := make(map[string]time.Duration, len(durations))
	for name, raw := range durations {
		if raw == "" {
			raw = "0s"
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", name, err)
		}
		parsed[name] = d
	}

	cfg := &Config{
		ServiceName:    c.App.Name,
		ServiceVersion: c.App.Version,
		Env:            c.App.Env,
		Port:           fmt.Sprintf("%d", c.App.Port),
		GinMode:        c.App.GinMode,

		APIBaseURL:      strings.TrimRight(c.API.BaseURL, "/"),
		AuthHeader:      c.API.AuthHeader,
		APITimeout:      parsed["api timeout"],
		PublicEndpoints: c.API.PublicEndpoints,
		CategoryLimit:   c.API.CategoryLimit,

		AuthenticatedEntryPath:   c.Auth.AuthenticatedEntryPath,
		UnauthenticatedEntryPath: c.Auth.UnauthenticatedEntryPath,
		RedirectParam:            c.Auth.RedirectParam,

		SessionStore:         c.Session.Store,
		SessionTTL:           parsed["session ttl"],
		SessionIdleTTL:       parsed["session idle ttl"],
		SessionSweepInterval: parsed["session sweep"],

		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,

		CacheStore:          c.Cache.Store,
		CacheTTL:            parsed["cache ttl"],
		CacheDedupeInterval: parsed["cache dedupe"],

		EventBus:           c.Events.Bus,
		EventChannelPrefix: c.Events.ChannelPrefix,

		LogLevel:  c.Log.Level,
		LogFormat: c.Log.Format,

		AllowedOrigins: c.CORS.AllowedOrigins,

		TracingEnabled:    c.Tracing.Enabled,
		TracingEndpoint:   c.Tracing.Endpoint,
		TracingSampleRate: c.Tracing.SampleRate,

		ProfilingEnabled:  c.Profiling.Enabled,
		ProfilingEndpoint: c.Profiling.Endpoint,

		ShutdownTimeout:     parsed["shutdown timeout"],
		ReadinessDrainDelay: parsed["readiness drain delay"],
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return errors.New("api base_url is required")
	}
	if c.AuthHeader == "" {
		return errors.New("api auth_header is required")
	}
	if c.AuthenticatedEntryPath == "" {
		return errors.New("auth authenticated_entry_path is required")
	}
	for name, store := range map[string]string{"session store": c.SessionStore, "cache store": c.CacheStore, "event bus": c.EventBus} {
		if store != "memory" && store != "redis" {
			return fmt.Errorf("%s must be memory or redis, got %q", name, store)
		}
	}
	return nil
}

// UsesRedis reports whether any component needs a Redis connection
func (c *Config) UsesRedis() bool {
	return c.SessionStore == "redis" || c.CacheStore == "redis" || c.EventBus == "redis"
}

func atoi(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
