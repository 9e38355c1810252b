package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Remote    RemoteConfig
	Device    DeviceConfig
	Store     StoreConfig
	Scanner   ScannerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Path  string
	Debug bool
}

// RemoteConfig points at the external catalog and ledger services
type RemoteConfig struct {
	CatalogBaseURL string
	LedgerBaseURL  string
	Timeout        time.Duration
}

// DeviceConfig identifies this terminal to the remote services. The token
// secret verifies operator tokens issued by the external identity service.
type DeviceConfig struct {
	TenantID    string
	TokenSecret string
}

// StoreConfig is the store header stamped onto receipts
type StoreConfig struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

// ScannerConfig tunes the keystroke-timing scan heuristic
type ScannerConfig struct {
	GapThreshold time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-engine")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8090")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_PATH", "./pos-engine.db")
	viper.SetDefault("DB_DEBUG", false)
	viper.SetDefault("CATALOG_BASE_URL", "http://localhost:8080")
	viper.SetDefault("LEDGER_BASE_URL", "http://localhost:8081")
	viper.SetDefault("REMOTE_TIMEOUT_SECONDS", 30)
	viper.SetDefault("DEVICE_TENANT_ID", "")
	viper.SetDefault("DEVICE_TOKEN_SECRET", "change-this-secret-in-production")
	viper.SetDefault("STORE_NAME", "Duka Point")
	viper.SetDefault("STORE_ADDRESS", "")
	viper.SetDefault("STORE_PHONE", "")
	viper.SetDefault("STORE_TAX_ID", "")
	viper.SetDefault("SCANNER_GAP_MS", 100)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Path:  viper.GetString("DB_PATH"),
			Debug: viper.GetBool("DB_DEBUG"),
		},
		Remote: RemoteConfig{
			CatalogBaseURL: viper.GetString("CATALOG_BASE_URL"),
			LedgerBaseURL:  viper.GetString("LEDGER_BASE_URL"),
			Timeout:        time.Duration(viper.GetInt("REMOTE_TIMEOUT_SECONDS")) * time.Second,
		},
		Device: DeviceConfig{
			TenantID:    viper.GetString("DEVICE_TENANT_ID"),
			TokenSecret: viper.GetString("DEVICE_TOKEN_SECRET"),
		},
		Store: StoreConfig{
			Name:    viper.GetString("STORE_NAME"),
			Address: viper.GetString("STORE_ADDRESS"),
			Phone:   viper.GetString("STORE_PHONE"),
			TaxID:   viper.GetString("STORE_TAX_ID"),
		},
		Scanner: ScannerConfig{
			GapThreshold: time.Duration(viper.GetInt("SCANNER_GAP_MS")) * time.Millisecond,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
	}
}

// DSN returns the sqlite connection string for the local database file
func (c *DatabaseConfig) DSN() string {
	return "file:" + c.Path + "?_busy_timeout=5000&_journal_mode=WAL"
}
