// Package installmentrepo manages repository layer of installments.
package installmentrepo

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

// RepoPGS facilitates installment repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns installment RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

var columns = []string{
	"id",
	"account_id",
	"total_amount",
	"installment_amount",
	"start_date",
	"end_date",
	"description",
}

func scanInstallment(row dbpkg.RowScanner) (domain.Installment, error) {
	var i domain.Installment

	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.TotalAmount,
		&i.InstallmentAmount,
		&i.StartDate,
		&i.EndDate,
		&i.Description,
	)

	return i, err
}

const createQuery = `
INSERT INTO installments (account_id, total_amount, installment_amount, start_date, end_date, description)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, account_id, total_amount, installment_amount, start_date, end_date, description
`

// Create creates the installment and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.InstallmentParams) (domain.Installment, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.TotalAmount,
		arg.InstallmentAmount,
		arg.StartDate,
		arg.EndDate,
		arg.Description,
	)

	i, err := scanInstallment(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "installments_account_id_fkey" {
			l.Info().Err(err).Send()
			return i, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return i, errorspkg.ErrInternal
	}

	return i, nil
}

// List returns the installments of the user matching the filters, latest start first.
//
// Only installments running entirely inside the date range are returned.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListInstallmentsParams) ([]domain.Installment, error) {
	l := zerolog.Ctx(ctx)

	q := dbpkg.Builder.
		Select(columns...).
		From("installments").
		Where(ownership.AccountOwnedBy("account_id", arg.UserID))

	if arg.AccountID != 0 {
		q = q.Where(sq.Eq{"account_id": arg.AccountID})
	}

	if !arg.From.IsZero() {
		q = q.Where(sq.GtOrEq{"start_date": arg.From})
	}

	if !arg.To.IsZero() {
		q = q.Where(sq.LtOrEq{"end_date": arg.To})
	}

	if arg.Search != "" {
		q = q.Where(dbpkg.SearchAny(arg.Search, "description"))
	}

	query, args, err := q.OrderBy("start_date DESC", "id DESC").Limit(arg.Limit).Offset(arg.Offset).ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	items, err := dbpkg.CollectRows(rows, scanInstallment)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// Get returns the installment with the given id if the user owns it.
func (r *RepoPGS) Get(ctx context.Context, userID, id int64) (domain.Installment, error) {
	l := zerolog.Ctx(ctx)

	var i domain.Installment

	query, args, err := dbpkg.Builder.
		Select(columns...).
		From("installments").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return i, errorspkg.ErrInternal
	}

	i, err = scanInstallment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return i, domain.ErrInstallmentNotFound
		}

		l.Error().Err(err).Send()

		return i, errorspkg.ErrInternal
	}

	return i, nil
}

// Update replaces the fields of the user's installment and reports whether it existed.
func (r *RepoPGS) Update(ctx context.Context, userID, id int64, arg domain.InstallmentParams) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Update("installments").
		SetMap(map[string]any{
			"account_id":         arg.AccountID,
			"total_amount":       arg.TotalAmount,
			"installment_amount": arg.InstallmentAmount,
			"start_date":         arg.StartDate,
			"end_date":           arg.EndDate,
			"description":        arg.Description,
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

// Delete removes the user's installment and reports whether it existed.
func (r *RepoPGS) Delete(ctx context.Context, userID, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Delete("installments").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return dbpkg.ExecAffected(ctx, r.db, query, args)
}
