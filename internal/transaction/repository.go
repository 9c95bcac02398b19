package transaction

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/mshalabi/housemate/internal/expense"
	"github.com/mshalabi/housemate/internal/payment"
)

// Repository reads expenses and payments for the merged feed. Both the
// date window and the user restriction are applied in SQL; house
// transaction volume can be large and must not be filtered in memory.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new transaction repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Expenses retrieves expenses of a house within the date window. When
// userID is non-empty, only rows where the user is the payer or a split
// participant are returned.
func (r *Repository) Expenses(ctx context.Context, houseID, userID string, start, end time.Time) ([]*expense.Expense, error) {
	query := `
		SELECT id, house_id, paid_by_id, category_id, description, amount, expense_date, receipt_url, split_between, created_at
		FROM expenses
		WHERE house_id = $1
		  AND expense_date >= $2 AND expense_date <= $3
		  AND ($4 = '' OR paid_by_id = $4 OR $4 = ANY(split_between))
		ORDER BY expense_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, houseID, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense
	for rows.Next() {
		e := &expense.Expense{}
		if err := rows.Scan(
			&e.ID,
			&e.HouseID,
			&e.PaidByID,
			&e.CategoryID,
			&e.Description,
			&e.Amount,
			&e.ExpenseDate,
			&e.ReceiptURL,
			pq.Array(&e.SplitBetween),
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, nil
}

// Payments retrieves payments of a house within the date window. When
// userID is non-empty, only rows where the user is either party are
// returned.
func (r *Repository) Payments(ctx context.Context, houseID, userID string, start, end time.Time) ([]*payment.Payment, error) {
	query := `
		SELECT id, house_id, from_user_id, to_user_id, amount, memo, payment_date, created_at
		FROM payments
		WHERE house_id = $1
		  AND payment_date >= $2 AND payment_date <= $3
		  AND ($4 = '' OR from_user_id = $4 OR to_user_id = $4)
		ORDER BY payment_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, houseID, start, end, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []*payment.Payment
	for rows.Next() {
		p := &payment.Payment{}
		if err := rows.Scan(
			&p.ID,
			&p.HouseID,
			&p.FromUserID,
			&p.ToUserID,
			&p.Amount,
			&p.Memo,
			&p.PaymentDate,
			&p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, nil
}
