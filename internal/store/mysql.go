package store

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"log/slog"

	"github.com/go-sql-driver/mysql"
	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jmoiron/sqlx"
	migrate "github.com/rubenv/sql-migrate"

	_ "github.com/lib/pq"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config defines configurations to connect database
type Config struct {
	Driver             string `mapstructure:"driver"`
	DSN                string `mapstructure:"dsn"`
	Automigrate        bool   `mapstructure:"automigrate"`
	MaxOpenConnections int    `mapstructure:"max_open_connections"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections"`
	TLSCAPath          string `mapstructure:"tls_ca_path"`
}

func (c Config) driver() string {
	if c.Driver == "" {
		return DriverMySQL
	}
	return strings.ToLower(c.Driver)
}

// MYSQLStore reads analytics records from a SQL database.
// Despite the name it also serves postgres when configured so.
type MYSQLStore struct {
	db    dependency.DB
	close context.CancelFunc
}

var _ dependency.Records = (*MYSQLStore)(nil)

// resolveCertPath resolves @certs paths to the config/certs directory
func resolveCertPath(path string) string {
	if !strings.HasPrefix(path, "@certs/") {
		return path
	}
	configPaths := []string{
		"./config/certs",
		"$HOME/config/grbpwr-analytics/certs",
		"/etc/grbpwr-analytics/certs",
	}
	certFile := strings.TrimPrefix(path, "@certs/")
	for _, basePath := range configPaths {
		fullPath := filepath.Join(os.ExpandEnv(basePath), certFile)
		if _, err := os.Stat(fullPath); err == nil {
			return fullPath
		}
	}
	return filepath.Join("./config/certs", certFile)
}

// registerTLSConfig registers the CA from TLSCAPath as the "custom" mysql TLS config.
// Reference it from the DSN with tls=custom.
func registerTLSConfig(cfg Config) error {
	if cfg.TLSCAPath == "" || cfg.driver() != DriverMySQL {
		return nil
	}
	certPath := resolveCertPath(cfg.TLSCAPath)
	caCert, err := os.ReadFile(certPath)
	if err != nil {
		return fmt.Errorf("failed to read CA certificate from %s: %w", certPath, err)
	}
	slog.Default().Info("using CA certificate from file", "path", certPath)

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return fmt.Errorf("failed to parse CA certificate")
	}
	return mysql.RegisterTLSConfig("custom", &tls.Config{RootCAs: caCertPool})
}

// New connects to the database, applies migrations when asked and returns a new MYSQLStore object.
func New(ctx context.Context, cfg Config) (*MYSQLStore, error) {
	driver := cfg.driver()
	if driver != DriverMySQL && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	if err := registerTLSConfig(cfg); err != nil {
		return nil, fmt.Errorf("failed to register TLS config: %w", err)
	}

	d, err := sqlx.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("couldn't open database : %v", err)
	}
	if cfg.MaxOpenConnections > 0 {
		d.SetMaxOpenConns(cfg.MaxOpenConnections)
	}
	if cfg.MaxIdleConnections > 0 {
		d.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	d.SetConnMaxLifetime(2 * time.Minute)
	d.SetConnMaxIdleTime(30 * time.Second)

	pingCtx, pingCancel := context.WithTimeout(ctx, 10*time.Second)
	defer pingCancel()
	if err := d.PingContext(pingCtx); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.Automigrate {
		slog.Default().InfoContext(ctx, "applying migrations")
		migrateCtx, migrateCancel := context.WithTimeout(ctx, 5*time.Minute)
		defer migrateCancel()
		if err := MigrateWithContext(migrateCtx, d.DB, driver); err != nil {
			d.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	ctx, c := context.WithCancel(ctx)
	ss := &MYSQLStore{
		db:    d,
		close: c,
	}
	go func() {
		<-ctx.Done()
		d.Close()
	}()
	return ss, nil
}

//go:embed sql
var fs embed.FS

// MigrateWithContext applies all pending migrations and gives up when ctx is done.
func MigrateWithContext(ctx context.Context, db *sql.DB, driver string) error {
	m := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: fs,
		Root:       "sql",
	}

	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := migrate.Exec(db, driver, m, migrate.Up)
		done <- result{n: n, err: err}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("migration timeout: %w", ctx.Err())
	case res := <-done:
		if res.err != nil {
			return fmt.Errorf("db migrations have failed: %w", res.err)
		}
		slog.Default().InfoContext(ctx, "applied migrations",
			slog.Int("count", res.n),
		)
		return nil
	}
}

func (ms *MYSQLStore) Close() {
	ms.close()
}

// Ping checks database connectivity by executing a simple query
func (ms *MYSQLStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var result int
	if err := ms.db.QueryRowxContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
