// Package creditcardrepo manages repository layer of credit cards.
package creditcardrepo

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

// RepoPGS facilitates credit card repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns credit card RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

var columns = []string{"id", "account_id", "card_number", "limit_amount", "balance", "due_date"}

func scanCreditCard(row dbpkg.RowScanner) (domain.CreditCard, error) {
	var (
		c       domain.CreditCard
		dueDate sql.NullTime
	)

	err := row.Scan(
		&c.ID,
		&c.AccountID,
		&c.CardNumber,
		&c.LimitAmount,
		&c.Balance,
		&dueDate,
	)

	if dueDate.Valid {
		c.DueDate = &dueDate.Time
	}

	return c, err
}

func nullDate(d *domain.CreditCardParams) sql.NullTime {
	if d.DueDate == nil {
		return sql.NullTime{}
	}

	return sql.NullTime{Time: *d.DueDate, Valid: true}
}

const createQuery = `
INSERT INTO credit_cards (account_id, card_number, limit_amount, balance, due_date)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, account_id, card_number, limit_amount, balance, due_date
`

// Create creates the credit card and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreditCardParams) (domain.CreditCard, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.CardNumber,
		arg.LimitAmount,
		arg.Balance,
		nullDate(&arg),
	)

	c, err := scanCreditCard(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "credit_cards_account_id_fkey" {
			l.Info().Err(err).Send()
			return c, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

// List returns the credit cards of the user matching the filters, newest first.
func (r *RepoPGS) List(ctx context.Context, arg domain.ListCreditCardsParams) ([]domain.CreditCard, error) {
	l := zerolog.Ctx(ctx)

	q := dbpkg.Builder.
		Select(columns...).
		From("credit_cards").
		Where(ownership.AccountOwnedBy("account_id", arg.UserID))

	if arg.AccountID != 0 {
		q = q.Where(sq.Eq{"account_id": arg.AccountID})
	}

	if arg.Search != "" {
		q = q.Where(dbpkg.SearchAny(arg.Search, "card_number"))
	}

	query, args, err := q.OrderBy("id DESC").Limit(arg.Limit).Offset(arg.Offset).ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	items, err := dbpkg.CollectRows(rows, scanCreditCard)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// Get returns the credit card with the given id if the user owns it.
func (r *RepoPGS) Get(ctx context.Context, userID, id int64) (domain.CreditCard, error) {
	l := zerolog.Ctx(ctx)

	var c domain.CreditCard

	query, args, err := dbpkg.Builder.
		Select(columns...).
		From("credit_cards").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return c, errorspkg.ErrInternal
	}

	c, err = scanCreditCard(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, domain.ErrCreditCardNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

// Update replaces the fields of the user's credit card and reports whether it existed.
func (r *RepoPGS) Update(ctx context.Context, userID, id int64, arg domain.CreditCardParams) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Update("credit_cards").
		SetMap(map[string]any{
			"account_id":   arg.AccountID,
			"card_number":  arg.CardNumber,
			"limit_amount": arg.LimitAmount,
			"balance":      arg.Balance,
			"due_date":     nullDate(&arg),
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

// Delete removes the user's credit card and reports whether it existed.
func (r *RepoPGS) Delete(ctx context.Context, userID, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Delete("credit_cards").
		Where(sq.Eq{"id": id}).
		Where(ownership.AccountOwnedBy("account_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return dbpkg.ExecAffected(ctx, r.db, query, args)
}
