// Package config loads application settings from config.toml and the
// environment. Environment variables use the PROC_ prefix and override the
// file; unset fields fall back to built-in defaults.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root of all runtime settings
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	Event     EventConfig
	HTTP      HTTPConfig
	Inventory InventoryConfig
	Telemetry TelemetryConfig
}

// AppConfig identifies the service instance
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig describes the backing database. Driver is "postgres" for
// deployments or "sqlite" for local development, where DBName is the file
// path. Lifetime values are minutes.
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

// RedisConfig describes the Redis instance used for event deduplication
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// LogConfig controls the zap logger. Level is one of debug, info, warn or
// error; Format is json or console; Output is stdout, stderr or a file path.
type LogConfig struct {
	Level  string
	Format string
	Output string
}

// EventConfig tunes event delivery. RequireRedis makes startup fail when
// Redis is unreachable instead of degrading to the in-memory store.
type EventConfig struct {
	IdempotencyTTL time.Duration
	RequireRedis   bool
}

// HTTPConfig tunes the gin server and its middleware
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// InventoryConfig holds reconciliation settings. StockProjectID names the
// project whose receptions feed current stock; receptions for any other
// project accrue assigned stock instead.
type InventoryConfig struct {
	StockProjectID  string
	DefaultCurrency string
}

// TelemetryConfig controls OpenTelemetry export. When disabled, trace and
// database instrumentation are not registered at all. LogFullSQL includes
// query parameters in database spans and is meant for development only.
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	Insecure          bool
	LogFullSQL        bool
}

// Load reads config.toml (if present), applies PROC_ environment overrides,
// fills defaults and validates the result.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, env vars and defaults still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("PROC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App:       loadApp(v),
		Database:  loadDatabase(v),
		Redis:     loadRedis(v),
		Log:       loadLog(v),
		Event:     loadEvent(v),
		HTTP:      loadHTTP(v),
		Inventory: loadInventory(v),
		Telemetry: loadTelemetry(v),
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadApp(v *viper.Viper) AppConfig {
	return AppConfig{
		Name: v.GetString("app.name"),
		Env:  v.GetString("app.env"),
		Port: v.GetString("app.port"),
	}
}

func loadDatabase(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Driver:          v.GetString("database.driver"),
		Host:            v.GetString("database.host"),
		Port:            v.GetInt("database.port"),
		User:            v.GetString("database.user"),
		Password:        v.GetString("database.password"),
		DBName:          v.GetString("database.dbname"),
		SSLMode:         v.GetString("database.sslmode"),
		MaxOpenConns:    v.GetInt("database.max_open_conns"),
		MaxIdleConns:    v.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
		ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
	}
}

func loadRedis(v *viper.Viper) RedisConfig {
	return RedisConfig{
		Host:     v.GetString("redis.host"),
		Port:     v.GetInt("redis.port"),
		Password: v.GetString("redis.password"),
		DB:       v.GetInt("redis.db"),
	}
}

func loadLog(v *viper.Viper) LogConfig {
	return LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}
}

func loadEvent(v *viper.Viper) EventConfig {
	return EventConfig{
		IdempotencyTTL: v.GetDuration("event.idempotency_ttl"),
		RequireRedis:   v.GetBool("event.require_redis"),
	}
}

func loadHTTP(v *viper.Viper) HTTPConfig {
	return HTTPConfig{
		ReadTimeout:      v.GetDuration("http.read_timeout"),
		WriteTimeout:     v.GetDuration("http.write_timeout"),
		IdleTimeout:      v.GetDuration("http.idle_timeout"),
		MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
		MaxBodySize:      v.GetInt64("http.max_body_size"),
		CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
		CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
		TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
	}
}

func loadInventory(v *viper.Viper) InventoryConfig {
	return InventoryConfig{
		StockProjectID:  v.GetString("inventory.stock_project_id"),
		DefaultCurrency: v.GetString("inventory.default_currency"),
	}
}

func loadTelemetry(v *viper.Viper) TelemetryConfig {
	return TelemetryConfig{
		Enabled:           v.GetBool("telemetry.enabled"),
		CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
		SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
		Insecure:          v.GetBool("telemetry.insecure"),
		LogFullSQL:        v.GetBool("telemetry.log_full_sql"),
	}
}

// applyDefaults fills every zero field with its built-in default. A zero
// value reads as "not set", so an explicit 0 cannot be configured for the
// numeric fields below.
func (c *Config) applyDefaults() {
	fallback(&c.App.Name, "procurement-backend")
	fallback(&c.App.Env, "development")
	fallback(&c.App.Port, "8080")

	fallback(&c.Database.Driver, "postgres")
	fallback(&c.Database.Host, "localhost")
	fallback(&c.Database.Port, 5432)
	fallback(&c.Database.User, "postgres")
	fallback(&c.Database.DBName, "procurement")
	fallback(&c.Database.SSLMode, "disable")
	fallback(&c.Database.MaxOpenConns, 25)
	fallback(&c.Database.MaxIdleConns, 5)
	fallback(&c.Database.ConnMaxLifetime, 60)
	fallback(&c.Database.ConnMaxIdleTime, 30)

	fallback(&c.Redis.Host, "localhost")
	fallback(&c.Redis.Port, 6379)

	fallback(&c.Log.Level, "info")
	fallback(&c.Log.Format, "console")
	fallback(&c.Log.Output, "stdout")

	fallback(&c.Event.IdempotencyTTL, 24*time.Hour)

	fallback(&c.HTTP.ReadTimeout, 15*time.Second)
	fallback(&c.HTTP.WriteTimeout, 15*time.Second)
	fallback(&c.HTTP.IdleTimeout, 60*time.Second)
	fallback(&c.HTTP.MaxHeaderBytes, 1<<20)
	fallback(&c.HTTP.MaxBodySize, 4<<20)
	// CORS origins have no default on purpose: an empty list allows no
	// cross-origin requests until origins are configured.
	if len(c.HTTP.CORSAllowMethods) == 0 {
		c.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(c.HTTP.CORSAllowHeaders) == 0 {
		c.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}

	fallback(&c.Inventory.DefaultCurrency, "MXN")

	fallback(&c.Telemetry.CollectorEndpoint, "localhost:4317")
	fallback(&c.Telemetry.SamplingRatio, 1.0)
}

func fallback[T comparable](field *T, def T) {
	var zero T
	if *field == zero {
		*field = def
	}
}

func (c *Config) validate() error {
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("database.driver must be 'postgres' or 'sqlite', got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Telemetry.SamplingRatio < 0 || c.Telemetry.SamplingRatio > 1 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0 and 1")
	}

	if c.App.Env == "production" {
		return c.validateProduction()
	}
	return nil
}

// validateProduction enforces the settings a production deployment cannot
// run without.
func (c *Config) validateProduction() error {
	if c.Database.Driver != "postgres" {
		return fmt.Errorf("database.driver must be 'postgres' in production")
	}
	if c.Database.Password == "" {
		return fmt.Errorf("database.password is required in production")
	}
	if c.Database.SSLMode == "disable" {
		return fmt.Errorf("database.sslmode cannot be 'disable' in production")
	}
	if c.Inventory.StockProjectID == "" {
		return fmt.Errorf("inventory.stock_project_id is required in production")
	}
	for _, origin := range c.HTTP.CORSAllowOrigins {
		if origin == "*" {
			return fmt.Errorf("cors_allow_origins cannot be '*' in production")
		}
	}
	if c.Telemetry.LogFullSQL {
		return fmt.Errorf("telemetry.log_full_sql cannot be enabled in production")
	}
	return nil
}

// DSN builds the postgres connection URL. Credentials are escaped so
// passwords with reserved characters survive the round trip.
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
