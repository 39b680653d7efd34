package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/jekabolt/grbpwr-analytics/internal/api/http"
	"github.com/jekabolt/grbpwr-analytics/internal/bucket"
	"github.com/jekabolt/grbpwr-analytics/internal/report"
	"github.com/jekabolt/grbpwr-analytics/internal/store"
	"github.com/jekabolt/grbpwr-analytics/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB      store.Config   `mapstructure:"store"`
	Logger  log.Config     `mapstructure:"logger"`
	HTTP    httpapi.Config `mapstructure:"http"`
	Reports report.Config  `mapstructure:"reports"`
	Bucket  bucket.Config  `mapstructure:"bucket"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Nested config keys use double underscore, e.g. STORE__DSN for store.dsn.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	bindEnvVars(v)
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/grbpwr-analytics")
		v.AddConfigPath("/etc/grbpwr-analytics")
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Build the mysql DSN from the MYSQL_* variables when no DSN is given.
	if config.DB.DSN == "" && (config.DB.Driver == "" || config.DB.Driver == store.DriverMySQL) {
		config.DB.DSN = mysqlDSNFromEnv()
	}

	return &config, nil
}

func mysqlDSNFromEnv() string {
	host := os.Getenv("MYSQL_HOST")
	port := os.Getenv("MYSQL_PORT")
	user := os.Getenv("MYSQL_USER")
	password := os.Getenv("MYSQL_PASSWORD")
	database := os.Getenv("MYSQL_DATABASE")
	if host == "" || user == "" || password == "" || database == "" {
		return ""
	}
	if port == "" {
		port = "3306"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8&parseTime=true", user, password, host, port, database)
	if os.Getenv("MYSQL_TLS_CA_PATH") != "" {
		dsn += "&tls=custom"
	}
	return dsn
}

func setDefaults(v *viper.Viper) {
	def := report.DefaultConfig()
	v.SetDefault("store.driver", store.DriverMySQL)
	v.SetDefault("http.port", "8081")
	v.SetDefault("http.rate_limit_requests", 100)
	v.SetDefault("http.rate_limit_window", "1m")
	v.SetDefault("reports.compute_timeout", def.ComputeTimeout)
	v.SetDefault("reports.forecast_history_months", def.ForecastHistoryMonths)
	v.SetDefault("reports.export_folder", def.ExportFolder)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (STORE__DSN) and flat keys (STORE_DSN)
func bindEnvVars(v *viper.Viper) {
	// Store
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("store.dsn", "STORE_DSN", "MYSQL_DSN")
	v.BindEnv("store.automigrate", "STORE_AUTOMIGRATE")
	v.BindEnv("store.max_open_connections", "STORE_MAX_OPEN_CONNECTIONS")
	v.BindEnv("store.max_idle_connections", "STORE_MAX_IDLE_CONNECTIONS")
	v.BindEnv("store.tls_ca_path", "MYSQL_TLS_CA_PATH")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.jwt_secret", "HTTP_JWT_SECRET")
	v.BindEnv("http.rate_limit_requests", "HTTP_RATE_LIMIT_REQUESTS")
	v.BindEnv("http.rate_limit_window", "HTTP_RATE_LIMIT_WINDOW")

	// Reports
	v.BindEnv("reports.compute_timeout", "REPORTS_COMPUTE_TIMEOUT")
	v.BindEnv("reports.forecast_history_months", "REPORTS_FORECAST_HISTORY_MONTHS")
	v.BindEnv("reports.export_folder", "REPORTS_EXPORT_FOLDER")

	// Bucket
	v.BindEnv("bucket.s3_access_key", "BUCKET_S3_ACCESS_KEY")
	v.BindEnv("bucket.s3_secret_access_key", "BUCKET_S3_SECRET_ACCESS_KEY")
	v.BindEnv("bucket.s3_endpoint", "BUCKET_S3_ENDPOINT")
	v.BindEnv("bucket.s3_bucket_name", "BUCKET_S3_BUCKET_NAME")
	v.BindEnv("bucket.s3_bucket_location", "BUCKET_S3_BUCKET_LOCATION")
	v.BindEnv("bucket.base_folder", "BUCKET_BASE_FOLDER")
	v.BindEnv("bucket.subdomain_endpoint", "BUCKET_SUBDOMAIN_ENDPOINT")
}
