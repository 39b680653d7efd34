package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig("config.toml")
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.True(t, cfg.DB.Automigrate)
	assert.Equal(t, 10, cfg.DB.MaxOpenConnections)
	assert.Equal(t, "8081", cfg.HTTP.Port)
	assert.Equal(t, []string{"https://grbpwr.com"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, time.Minute, cfg.HTTP.RateLimitWindow)
	assert.Equal(t, 30*time.Second, cfg.Reports.ComputeTimeout)
	assert.Equal(t, 12, cfg.Reports.ForecastHistoryMonths)
	assert.Equal(t, "grbpwr-analytics", cfg.Bucket.BaseFolder)
	assert.False(t, cfg.Bucket.Enabled())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("STORE_DSN", "postgres://localhost/analytics")
	t.Setenv("HTTP_JWT_SECRET", "secret")
	t.Setenv("REPORTS_COMPUTE_TIMEOUT", "5s")

	cfg, err := LoadConfig("config.toml")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "postgres://localhost/analytics", cfg.DB.DSN)
	assert.Equal(t, "secret", cfg.HTTP.JWTSecret)
	assert.Equal(t, 5*time.Second, cfg.Reports.ComputeTimeout)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "8081", cfg.HTTP.Port)
	assert.Equal(t, "exports", cfg.Reports.ExportFolder)
}

func TestMySQLDSNFromEnv(t *testing.T) {
	for _, k := range []string{"MYSQL_HOST", "MYSQL_PORT", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DATABASE", "MYSQL_TLS_CA_PATH"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	assert.Empty(t, mysqlDSNFromEnv())

	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_USER", "u")
	t.Setenv("MYSQL_PASSWORD", "p")
	t.Setenv("MYSQL_DATABASE", "analytics")
	assert.Equal(t, "u:p@tcp(db:3306)/analytics?charset=utf8&parseTime=true", mysqlDSNFromEnv())

	t.Setenv("MYSQL_TLS_CA_PATH", "@certs/ca.pem")
	assert.Contains(t, mysqlDSNFromEnv(), "&tls=custom")
}
