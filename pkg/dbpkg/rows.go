package dbpkg

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/pkg/errorspkg"
)

// CollectRows scans every row with scan and closes rows.
func CollectRows[T any](rows *sql.Rows, scan func(RowScanner) (T, error)) ([]T, error) {
	defer rows.Close()

	items := []T{}

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err := rows.Close(); err != nil {
		return nil, err
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Affected reports whether the statement changed at least one row.
func Affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// ExecAffected runs the statement and reports whether it changed at least one row.
//
// Failures are logged and returned as errorspkg.ErrInternal.
func ExecAffected(ctx context.Context, db SQLInterface, query string, args []any) (bool, error) {
	l := zerolog.Ctx(ctx)

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	ok, err := Affected(res)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return ok, nil
}
