package ownership

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-petr/pet-finance/pkg/dbpkg"
)

func TestAccountOwnedBy(t *testing.T) {
	t.Parallel()

	query, args, err := dbpkg.Builder.Select("t.id").From("transactions t").
		Where("t.id = ?", int64(7)).
		Where(AccountOwnedBy("t.account_id", 42)).
		ToSql()
	if err != nil {
		t.Fatalf("ToSql() returned error: %v", err)
	}

	want := "SELECT t.id FROM transactions t WHERE t.id = $1 AND t.account_id IN (SELECT id FROM accounts WHERE user_id = $2)"
	if query != want {
		t.Errorf("query = %q, want %q", query, want)
	}

	if diff := cmp.Diff([]interface{}{int64(7), int64(42)}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestPaymentOwnedByInsideUpdate(t *testing.T) {
	t.Parallel()

	query, args, err := dbpkg.Builder.Update("notifications").
		Set("is_read", true).
		Where("id = ?", int64(3)).
		Where(PaymentOwnedBy("monthly_payment_id", 9)).
		ToSql()
	if err != nil {
		t.Fatalf("ToSql() returned error: %v", err)
	}

	if len(args) != 3 {
		t.Fatalf("len(args) = %d, want 3", len(args))
	}

	if args[2] != int64(9) {
		t.Errorf("args[2] = %v, want user id 9", args[2])
	}

	wantPrefix := "UPDATE notifications SET is_read = $1 WHERE id = $2 AND monthly_payment_id IN"
	if !strings.HasPrefix(query, wantPrefix) {
		t.Errorf("query = %q, want ownership predicate after id filter", query)
	}
}
