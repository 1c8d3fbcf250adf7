// Package incomerepo manages repository layer of income records.
package incomerepo

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ownership"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
)

// RepoPGS facilitates income repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns income RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

var columns = []string{"id", "account_id", "amount", "date", "source"}

func scanIncome(row dbpkg.RowScanner) (domain.Income, error) {
	var i domain.Income

	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.Amount,
		&i.Date,
		&i.Source,
	)

	return i, err
}

const createQuery = `
INSERT INTO income (account_id, amount, date, source)
VALUES ($1, $2, $3, $4)
RETURNING id, account_id, amount, date, source
`

// Create creates the income record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.IncomeParams) (domain.Income, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Amount,
		arg.Date,
		arg.Source,
	)

	i, err := scanIncome(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "income_account_id_fkey" {
			l.Info().Err(err).Send()
			return i, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return i, errorspkg.ErrInternal
	}

	return i, nil
}

// List returns the income records of the user matching the filters, latest date first.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListIncomeParams) ([]domain.Income, error) {
	l := zerolog.Ctx(ctx)

	q := dbpkg.Builder.
		Select(columns...).
		From("income").
		Where(ownership.AccountOwnedBy("account_id", arg.UserID))

	if arg.AccountID != 0 {
		q = q.Where(sq.Eq{"account_id": arg.AccountID})
	}

	if arg.Source != "" {
		q = q.Where(sq.Eq{"source": arg.Source})
	}

	if !arg.From.IsZero() {
		q = q.Where(sq.GtOrEq{"date": arg.From})
	}

	if !arg.To.IsZero() {
		q = q.Where(sq.LtOrEq{"date": arg.To})
	}

	if arg.Search != "" {
		q = q.Where(dbpkg.SearchAny(arg.Search, "source"))
	}

	query, args, err := q.OrderBy("date DESC", "id DESC").Limit(arg.Limit).Offset(arg.Offset).ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	items, err := dbpkg.CollectRows(rows, scanIncome)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// Get returns the income record with the given id if the user owns it.
func (r *RepoPGS) Get(ctx context.Context, userID, id int64) (domain.Income, error) {
	l := zerolog.Ctx(ctx)

	var i domain.Income

	query, args, err := dbpkg.Builder.
		Select(columns...).
		From("income").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return i, errorspkg.ErrInternal
	}

	i, err = scanIncome(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return i, domain.ErrIncomeNotFound
		}

		l.Error().Err(err).Send()

		return i, errorspkg.ErrInternal
	}

	return i, nil
}

// Update replaces the fields of the user's income record and reports whether it existed.
func (r *RepoPGS) Update(ctx context.Context, userID, id int64, arg domain.IncomeParams) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Update("income").
		SetMap(map[string]any{
			"account_id": arg.AccountID,
			"amount":     arg.Amount,
			"date":       arg.Date,
			"source":     arg.Source,
		}).
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return dbpkg.ExecAffected(ctx, r.db, query, args)
}

// Delete removes the user's income record and reports whether it existed.
func (r *RepoPGS) Delete(ctx context.Context, userID, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Delete("income").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return dbpkg.ExecAffected(ctx, r.db, query, args)
}
