package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App    AppConfig
	Mongo  MongoConfig
	Cache  CacheConfig
	JWT    JWTConfig
	Log    LogConfig
	HTTP   HTTPConfig
	Report ReportConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// MongoConfig holds document database connection settings
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

// CacheConfig holds offline snapshot cache settings
type CacheConfig struct {
	Enabled bool
	Path    string // sqlite file path
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// ReportConfig holds report rendering settings
type ReportConfig struct {
	OrgName        string
	OrgTagline     string
	OrgSuffix      string // filename suffix, e.g. "RML"
	LogoURL        string
	LogoTimeout    time.Duration
	Currency       string // currency label printed next to amounts
	PreparedBy     string
	ApprovedBy     string
	Confidential   string // footer watermark text
	RenderTimeout  time.Duration
	DashboardAlias string // default quick stats period when none requested
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with BK_ prefix (e.g., BK_JWT_SECRET)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("BK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("mongo.uri"),
			Database:       v.GetString("mongo.database"),
			ConnectTimeout: v.GetDuration("mongo.connect_timeout"),
			PingTimeout:    v.GetDuration("mongo.ping_timeout"),
		},
		Cache: CacheConfig{
			Enabled: v.GetBool("cache.enabled"),
			Path:    v.GetString("cache.path"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("jwt.secret"),
			Expiration: v.GetDuration("jwt.expiration"),
			Issuer:     v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
		},
		Report: ReportConfig{
			OrgName:        v.GetString("report.org_name"),
			OrgTagline:     v.GetString("report.org_tagline"),
			OrgSuffix:      v.GetString("report.org_suffix"),
			LogoURL:        v.GetString("report.logo_url"),
			LogoTimeout:    v.GetDuration("report.logo_timeout"),
			Currency:       v.GetString("report.currency"),
			PreparedBy:     v.GetString("report.prepared_by"),
			ApprovedBy:     v.GetString("report.approved_by"),
			Confidential:   v.GetString("report.confidential"),
			RenderTimeout:  v.GetDuration("report.render_timeout"),
			DashboardAlias: v.GetString("report.dashboard_alias"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "bookkeeper"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = "mongodb://localhost:27017"
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "bookkeeper"
	}
	if cfg.Mongo.ConnectTimeout == 0 {
		cfg.Mongo.ConnectTimeout = 10 * time.Second
	}
	if cfg.Mongo.PingTimeout == 0 {
		cfg.Mongo.PingTimeout = 5 * time.Second
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "bookkeeper-cache.db"
	}
	if cfg.JWT.Expiration == 0 {
		cfg.JWT.Expiration = 24 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "bookkeeper"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// Report rendering happens inside the request
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.Report.OrgName == "" {
		cfg.Report.OrgName = "RML Business Services"
	}
	if cfg.Report.OrgTagline == "" {
		cfg.Report.OrgTagline = "Business Management Report"
	}
	if cfg.Report.OrgSuffix == "" {
		cfg.Report.OrgSuffix = "RML"
	}
	if cfg.Report.LogoTimeout == 0 {
		cfg.Report.LogoTimeout = 5 * time.Second
	}
	if cfg.Report.Currency == "" {
		cfg.Report.Currency = "UGX"
	}
	if cfg.Report.Confidential == "" {
		cfg.Report.Confidential = "CONFIDENTIAL"
	}
	if cfg.Report.RenderTimeout == 0 {
		cfg.Report.RenderTimeout = 30 * time.Second
	}
	if cfg.Report.DashboardAlias == "" {
		cfg.Report.DashboardAlias = "today"
	}
}

// validate checks that the configuration is usable
func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		if c.App.Env == "production" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		c.JWT.Secret = "dev-secret-do-not-use-in-production"
	}
	if c.App.Env != "development" && c.App.Env != "staging" && c.App.Env != "production" {
		return fmt.Errorf("app.env must be development, staging or production, got %q", c.App.Env)
	}
	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
