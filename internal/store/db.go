package store

import (
	"context"
	"fmt"

	"github.com/Knetic/go-namedParameterQuery"
	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jmoiron/sqlx"
)

// bind expands named parameters and IN lists, then rewrites the placeholders for the driver.
func bind(conn dependency.DB, query string, params map[string]any) (string, []any, error) {
	queryNamed := namedParameterQuery.NewNamedParameterQuery(query)
	queryNamed.SetValuesFromMap(params)
	query, args, err := sqlx.In(queryNamed.GetParsedQuery(), queryNamed.GetParsedParameters()...)
	if err != nil {
		return "", nil, fmt.Errorf("sqlx in: %w", err)
	}
	return conn.Rebind(query), args, nil
}

func QueryListNamed[T any](
	ctx context.Context,
	conn dependency.DB,
	query string,
	params map[string]any,
) ([]T, error) {
	query, args, err := bind(conn, query, params)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	var target []T
	for rows.Next() {
		var t T
		if err := rows.StructScan(&t); err != nil {
			return nil, fmt.Errorf("struct scan: %w", err)
		}
		target = append(target, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return target, nil
}
