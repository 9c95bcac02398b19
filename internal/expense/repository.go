package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mshalabi/housemate/internal/database"
)

// Repository handles expense persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new expense. It takes a DBTX so the insert joins the
// transaction that also applies the balance transfers.
func (r *Repository) Create(ctx context.Context, q database.DBTX, houseID, payerID string, req *CreateExpenseRequest, expenseDate time.Time) (*Expense, error) {
	query := `
		INSERT INTO expenses (id, house_id, paid_by_id, category_id, description, amount, expense_date, receipt_url, split_between)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, house_id, paid_by_id, category_id, description, amount, expense_date, receipt_url, split_between, created_at
	`

	e := &Expense{}
	err := q.QueryRowContext(ctx, query,
		uuid.NewString(),
		houseID,
		payerID,
		req.CategoryID,
		req.Description,
		req.Amount,
		expenseDate,
		req.ReceiptURL,
		pq.Array(req.SplitBetween),
	).Scan(
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
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return e, nil
}

// ListByHouse retrieves all expenses of a house, newest first
func (r *Repository) ListByHouse(ctx context.Context, houseID string) ([]*Expense, error) {
	query := `
		SELECT id, house_id, paid_by_id, category_id, description, amount, expense_date, receipt_url, split_between, created_at
		FROM expenses
		WHERE house_id = $1
		ORDER BY expense_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
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
