// Package notificationrepo manages repository layer of notifications.
package notificationrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/ownership"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
)

// RepoPGS facilitates notification repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns notification RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

var columns = []string{"n.id", "n.monthly_payment_id", "n.message", "n.notified_at", "n.is_read"}

func scanNotification(row dbpkg.RowScanner) (domain.Notification, error) {
	var n domain.Notification

	err := row.Scan(
		&n.ID,
		&n.MonthlyPaymentID,
		&n.Message,
		&n.NotifiedAt,
		&n.IsRead,
	)

	return n, err
}

// The insert selects the payment row, so a payment of another user inserts nothing.
const createQuery = `
INSERT INTO notifications (monthly_payment_id, message, notified_at, is_read)
SELECT mp.id, $2, $3, $4
FROM monthly_payments mp
JOIN accounts a ON a.id = mp.account_id
WHERE mp.id = $1 AND a.user_id = $5
RETURNING id, monthly_payment_id, message, notified_at, is_read
`

// Create creates a notification about a monthly payment of the user and then returns it.
func (r *RepoPGS) Create(ctx context.Context, userID int64, arg domain.CreateNotificationParams) (domain.Notification, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.MonthlyPaymentID,
		arg.Message,
		arg.NotifiedAt,
		arg.IsRead,
		userID,
	)

	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Int64("monthly_payment_id", arg.MonthlyPaymentID).Msg("payment ownership check failed")
			return n, domain.ErrMonthlyPaymentNotFound
		}

		l.Error().Err(err).Send()

		return n, errorspkg.ErrInternal
	}

	return n, nil
}

func (r *RepoPGS) query(ctx context.Context, q sq.SelectBuilder) ([]domain.Notification, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := q.ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	items, err := dbpkg.CollectRows(rows, scanNotification)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// List returns the notifications of the user, newest first.
func (r *RepoPGS) List(ctx context.Context, userID int64, page domain.Page) ([]domain.Notification, error) {
	return r.query(ctx, dbpkg.Builder.
		Select(columns...).
		From("notifications n").
		Where(ownership.PaymentOwnedBy("n.monthly_payment_id", userID)).
		OrderBy("n.notified_at DESC", "n.id DESC").
		Limit(page.Limit).
		Offset(page.Offset))
}

// ListDue returns the notifications of the user whose payment is due between from and to
// inclusive, earliest due date first.
func (r *RepoPGS) ListDue(ctx context.Context, userID int64, from, to time.Time) ([]domain.Notification, error) {
	return r.query(ctx, dbpkg.Builder.
		Select(columns...).
		From("notifications n").
		Join("monthly_payments mp ON mp.id = n.monthly_payment_id").
		Join("accounts a ON a.id = mp.account_id").
		Where(sq.Eq{"a.user_id": userID}).
		Where(sq.GtOrEq{"mp.due_date": from}).
		Where(sq.LtOrEq{"mp.due_date": to}).
		OrderBy("mp.due_date ASC", "n.id ASC"))
}

// MarkRead flags the user's notification as read and reports whether it existed.
func (r *RepoPGS) MarkRead(ctx context.Context, userID, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Update("notifications").
		Set("is_read", true).
		Where(sq.Eq{"id": id}).
		Where(ownership.PaymentOwnedBy("monthly_payment_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return dbpkg.ExecAffected(ctx, r.db, query, args)
}

// Delete removes the user's notification and reports whether it existed.
func (r *RepoPGS) Delete(ctx context.Context, userID, id int64) (bool, error) {
	l := zerolog.Ctx(ctx)

	query, args, err := dbpkg.Builder.
		Delete("notifications").
		Where(sq.Eq{"id": id}).
		Where(ownership.PaymentOwnedBy("monthly_payment_id", userID)).
		ToSql()
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return dbpkg.ExecAffected(ctx, r.db, query, args)
}
