// Package transactionrepo manages repository layer of transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ownership"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/moneypkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

var columns = []string{"id", "account_id", "amount", "date", "description", "category", "currency"}

func scanTransaction(row dbpkg.RowScanner) (domain.Transaction, error) {
	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Amount,
		&t.Date,
		&t.Description,
		&t.Category,
		&t.Currency,
	)

	return t, err
}

const createQuery = `
INSERT INTO transactions (account_id, amount, date, description, category, currency)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, account_id, amount, date, description, category, currency
`

// Create creates the transaction and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.TransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Amount,
		arg.Date,
		arg.Description,
		arg.Category,
		arg.Currency,
	)

	t, err := scanTransaction(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "transactions_account_id_fkey" {
			l.Info().Err(err).Send()
			return t, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

func dateBetween(q sq.SelectBuilder, r domain.DateRange) sq.SelectBuilder {
	if !r.From.IsZero() {
		q = q.Where(sq.GtOrEq{"date": r.From})
	}

	if !r.To.IsZero() {
		q = q.Where(sq.LtOrEq{"date": r.To})
	}

	return q
}

// List returns the transactions of the user matching the filters, latest date first.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	q := dbpkg.Builder.
		Select(columns...).
		From("transactions").
		Where(ownership.AccountOwnedBy("account_id", arg.UserID))

	if arg.AccountID != 0 {
		q = q.Where(sq.Eq{"account_id": arg.AccountID})
	}

	if arg.Category != "" {
		q = q.Where(sq.Eq{"category": arg.Category})
	}

	q = dateBetween(q, arg.DateRange)

	if arg.Search != "" {
		q = q.Where(dbpkg.SearchAny(arg.Search, "description", "category"))
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

	items, err := dbpkg.CollectRows(rows, scanTransaction)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanDailyTotal(row dbpkg.RowScanner) (domain.DailyTotal, error) {
	var (
		d     domain.DailyTotal
		total decimal.Decimal
	)

	if err := row.Scan(&d.Date, &total); err != nil {
		return d, err
	}

	d.Amount = moneypkg.Format(total)

	return d, nil
}

// Summary returns the per-date totals of the user's transactions, earliest date first.
func (r *RepoPGS) Summary(ctx context.Context, userID int64, dates domain.DateRange) ([]domain.DailyTotal, error) {
	l := zerolog.Ctx(ctx)

	q := dbpkg.Builder.
		Select("date", "SUM(amount)").
		From("transactions").
		Where(ownership.AccountOwnedBy("account_id", userID))

	query, args, err := dateBetween(q, dates).GroupBy("date").OrderBy("date ASC").ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	items, err := dbpkg.CollectRows(rows, scanDailyTotal)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// Get returns the transaction with the given id if the user owns it.
func (r *RepoPGS) Get(ctx context.Context, userID, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	var t domain.Transaction

	query, args, err := dbpkg.Builder.
		Select(columns...).
		From("transactions").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return t, errorspkg.ErrInternal
	}

	t, err = scanTransaction(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return t, domain.ErrTransactionNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// Update replaces the fields of the user's transaction and reports whether it existed.
func (r *RepoPGS) Update(ctx context.Context, userID, id int64, arg domain.TransactionParams) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Update("transactions").
		SetMap(map[string]any{
			"account_id":  arg.AccountID,
			"amount":      arg.Amount,
			"date":        arg.Date,
			"description": arg.Description,
			"category":    arg.Category,
			"currency":    arg.Currency,
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

// Delete removes the user's transaction and reports whether it existed.
func (r *RepoPGS) Delete(ctx context.Context, userID, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Delete("transactions").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return dbpkg.ExecAffected(ctx, r.db, query, args)
}
