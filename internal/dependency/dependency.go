package dependency

import (
	"context"
	"database/sql"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/jmoiron/sqlx"
)

//go:generate mockery --with-expecter --case underscore --all --output=./mocks
type (
	// Records is the read side of the transactional record store.
	Records interface {
		// ListOrders returns the orders created inside period with their items.
		// A zero period returns the full history.
		ListOrders(ctx context.Context, period entity.TimeRange) ([]entity.Order, error)
		// ListProducts returns the whole catalog with stock levels.
		ListProducts(ctx context.Context) ([]entity.Product, error)
		// ListCategories returns all product categories.
		ListCategories(ctx context.Context) ([]entity.Category, error)
		// ListCustomers returns all customers.
		ListCustomers(ctx context.Context) ([]entity.Customer, error)
		// Ping checks the store is reachable.
		Ping(ctx context.Context) error
	}

	// Exporter uploads report snapshots to object storage.
	Exporter interface {
		// UploadExport stores payload under folder/name and returns its public URL.
		UploadExport(ctx context.Context, payload []byte, folder, name, contentType string) (string, error)
	}

	DB interface {
		ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)

		// sqlx methods
		GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
		QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
		SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
		Rebind(query string) string
		DriverName() string
	}
)
