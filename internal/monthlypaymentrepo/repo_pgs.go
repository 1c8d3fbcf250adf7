// Package monthlypaymentrepo manages repository layer of monthly payments.
package monthlypaymentrepo

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

// RepoPGS facilitates monthly payment repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns monthly payment RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

var columns = []string{"id", "account_id", "amount", "due_date", "description"}

func scanMonthlyPayment(row dbpkg.RowScanner) (domain.MonthlyPayment, error) {
	var p domain.MonthlyPayment

	err := row.Scan(
		&p.ID,
		&p.AccountID,
		&p.Amount,
		&p.DueDate,
		&p.Description,
	)

	return p, err
}

const createQuery = `
INSERT INTO monthly_payments (account_id, amount, due_date, description)
VALUES ($1, $2, $3, $4)
RETURNING id, account_id, amount, due_date, description
`

// Create creates the monthly payment and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.MonthlyPaymentParams) (domain.MonthlyPayment, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.Amount,
		arg.DueDate,
		arg.Description,
	)

	p, err := scanMonthlyPayment(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "monthly_payments_account_id_fkey" {
			l.Info().Err(err).Send()
			return p, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

// List returns the monthly payments of the user matching the filters, latest due date first.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListMonthlyPaymentsParams) ([]domain.MonthlyPayment, error) {
	l := zerolog.Ctx(ctx)

	q := dbpkg.Builder.
		Select(columns...).
		From("monthly_payments").
		Where(ownership.AccountOwnedBy("account_id", arg.UserID))

	if arg.AccountID != 0 {
		q = q.Where(sq.Eq{"account_id": arg.AccountID})
	}

	if !arg.From.IsZero() {
		q = q.Where(sq.GtOrEq{"due_date": arg.From})
	}

	if !arg.To.IsZero() {
		q = q.Where(sq.LtOrEq{"due_date": arg.To})
	}

	if arg.Search != "" {
		q = q.Where(dbpkg.SearchAny(arg.Search, "description"))
	}

	query, args, err := q.OrderBy("due_date DESC", "id DESC").Limit(arg.Limit).Offset(arg.Offset).ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	items, err := dbpkg.CollectRows(rows, scanMonthlyPayment)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// Get returns the monthly payment with the given id if the user owns it.
func (r *RepoPGS) Get(ctx context.Context, userID, id int64) (domain.MonthlyPayment, error) {
	l := zerolog.Ctx(ctx)

	var p domain.MonthlyPayment

	query, args, err := dbpkg.Builder.
		Select(columns...).
		From("monthly_payments").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return p, errorspkg.ErrInternal
	}

	p, err = scanMonthlyPayment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, domain.ErrMonthlyPaymentNotFound
		}

		l.Error().Err(err).Send()

		return p, errorspkg.ErrInternal
	}

	return p, nil
}

// Update replaces the fields of the user's monthly payment and reports whether it existed.
func (r *RepoPGS) Update(ctx context.Context, userID, id int64, arg domain.MonthlyPaymentParams) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Update("monthly_payments").
		SetMap(map[string]any{
			"account_id":  arg.AccountID,
			"amount":      arg.Amount,
			"due_date":    arg.DueDate,
			"description": arg.Description,
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

// Delete removes the user's monthly payment and reports whether it existed.
//
// A payment that notifications still refer to is kept and ErrMonthlyPaymentHasNotifications is returned.
func (r *RepoPGS) Delete(ctx context.Context, userID, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Delete("monthly_payments").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "notifications_monthly_payment_id_fkey" {
			l.Info().Err(err).Send()
			return false, domain.ErrMonthlyPaymentHasNotifications
		}

		l.Error().Err(err).Send()

		return false, errorspkg.ErrInternal
	}

	ok, err := dbpkg.Affected(res)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return ok, nil
}
