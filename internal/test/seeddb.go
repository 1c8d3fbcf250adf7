// Package test provides shared helpers for tests that run against PostgreSQL.
package test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/pkg/configpkg"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/passpkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"

	_ "github.com/lib/pq" // postgres driver
)

// ConfigPath is the location of app.env relative to a package under internal/.
const ConfigPath = "../../configs"

// LoadConfig loads the test configuration or fails the test.
func LoadConfig(t *testing.T) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(ConfigPath)
	if err != nil {
		t.Fatalf("configpkg.Load(%q) returned error: %v", ConfigPath, err)
	}

	return config
}

// SetupTX migrates the test database and returns a transaction that is rolled back after the test.
func SetupTX(t *testing.T) *sql.Tx {
	t.Helper()

	config := LoadConfig(t)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource(), dbpkg.PoolOptions{MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("dbpkg.Setup() returned error: %v", err)
	}

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("dbpkg.Migrate() returned error: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatalf("db.Close() returned error: %v", err)
	}

	return dbpkg.SetupTX(t, config.DBDriver, config.DBSource())
}

// Date returns midnight UTC of the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SeedUser creates random User inside a test transaction.
func SeedUser(t *testing.T, tx dbpkg.SQLInterface) domain.User {
	t.Helper()

	hash, err := passpkg.Hash(randompkg.String(12))
	if err != nil {
		t.Fatalf("passpkg.Hash() returned error: %v", err)
	}

	u := domain.User{
		Username:     randompkg.Owner(),
		Email:        randompkg.Email(),
		PasswordHash: hash,
	}

	const q = `INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at`

	if err := tx.QueryRowContext(context.Background(), q, u.Username, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.CreatedAt); err != nil {
		t.Fatalf("seeding user returned error: %v", err)
	}

	return u
}

// SeedAccount creates an Account of the user with the given balance inside a test transaction.
func SeedAccount(t *testing.T, tx dbpkg.SQLInterface, userID int64, balance string) domain.Account {
	t.Helper()

	a := domain.Account{
		UserID:   userID,
		Name:     randompkg.String(10),
		Type:     "checking",
		Currency: randompkg.Currency(),
	}

	const q = `
	INSERT INTO accounts (user_id, name, type, balance, currency)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, balance`

	if err := tx.QueryRowContext(context.Background(), q, a.UserID, a.Name, a.Type, balance, a.Currency).
		Scan(&a.ID, &a.Balance); err != nil {
		t.Fatalf("seeding account returned error: %v", err)
	}

	return a
}

// SeedCreditCard creates a CreditCard with the given balance inside a test transaction.
func SeedCreditCard(t *testing.T, tx dbpkg.SQLInterface, accountID int64, balance string) domain.CreditCard {
	t.Helper()

	c := domain.CreditCard{
		AccountID:   accountID,
		CardNumber:  "4111" + randompkg.String(12),
		LimitAmount: "5000.00",
	}

	const q = `
	INSERT INTO credit_cards (account_id, card_number, limit_amount, balance)
	VALUES ($1, $2, $3, $4)
	RETURNING id, balance`

	if err := tx.QueryRowContext(context.Background(), q, c.AccountID, c.CardNumber, c.LimitAmount, balance).
		Scan(&c.ID, &c.Balance); err != nil {
		t.Fatalf("seeding credit card returned error: %v", err)
	}

	return c
}

// SeedIncome creates an Income inside a test transaction.
func SeedIncome(t *testing.T, tx dbpkg.SQLInterface, accountID int64, amount string, date time.Time) domain.Income {
	t.Helper()

	i := domain.Income{
		AccountID: accountID,
		Amount:    amount,
		Date:      date,
		Source:    "salary",
	}

	const q = `INSERT INTO income (account_id, amount, date, source) VALUES ($1, $2, $3, $4) RETURNING id`

	if err := tx.QueryRowContext(context.Background(), q, i.AccountID, i.Amount, i.Date, i.Source).
		Scan(&i.ID); err != nil {
		t.Fatalf("seeding income returned error: %v", err)
	}

	return i
}

// SeedTransaction creates a Transaction inside a test transaction.
func SeedTransaction(t *testing.T, tx dbpkg.SQLInterface, accountID int64, amount string, date time.Time) domain.Transaction {
	t.Helper()

	tr := domain.Transaction{
		AccountID:   accountID,
		Amount:      amount,
		Date:        date,
		Description: randompkg.String(12),
		Category:    "groceries",
		Currency:    "USD",
	}

	const q = `
	INSERT INTO transactions (account_id, amount, date, description, category, currency)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id`

	if err := tx.QueryRowContext(context.Background(), q,
		tr.AccountID, tr.Amount, tr.Date, tr.Description, tr.Category, tr.Currency).
		Scan(&tr.ID); err != nil {
		t.Fatalf("seeding transaction returned error: %v", err)
	}

	return tr
}

// SeedMonthlyPayment creates a MonthlyPayment inside a test transaction.
func SeedMonthlyPayment(t *testing.T, tx dbpkg.SQLInterface, accountID int64, dueDate time.Time) domain.MonthlyPayment {
	t.Helper()

	mp := domain.MonthlyPayment{
		AccountID:   accountID,
		Amount:      randompkg.MoneyAmountBetween(10, 500),
		DueDate:     dueDate,
		Description: "rent " + randompkg.String(6),
	}

	const q = `
	INSERT INTO monthly_payments (account_id, amount, due_date, description)
	VALUES ($1, $2, $3, $4)
	RETURNING id`

	if err := tx.QueryRowContext(context.Background(), q, mp.AccountID, mp.Amount, mp.DueDate, mp.Description).
		Scan(&mp.ID); err != nil {
		t.Fatalf("seeding monthly payment returned error: %v", err)
	}

	return mp
}

// SeedNotification creates an unread Notification for the payment inside a test transaction.
func SeedNotification(t *testing.T, tx dbpkg.SQLInterface, monthlyPaymentID int64) domain.Notification {
	t.Helper()

	n := domain.Notification{
		MonthlyPaymentID: monthlyPaymentID,
		Message:          "payment due " + randompkg.String(6),
	}

	const q = `
	INSERT INTO notifications (monthly_payment_id, message)
	VALUES ($1, $2)
	RETURNING id, notified_at, is_read`

	if err := tx.QueryRowContext(context.Background(), q, n.MonthlyPaymentID, n.Message).
		Scan(&n.ID, &n.NotifiedAt, &n.IsRead); err != nil {
		t.Fatalf("seeding notification returned error: %v", err)
	}

	return n
}
