package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mshalabi/housemate/internal/database"
)

// Repository handles payment persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new payment. It takes a DBTX so the insert joins the
// transaction that also reduces the balance.
func (r *Repository) Create(ctx context.Context, q database.DBTX, houseID, fromUserID string, req *CreatePaymentRequest, paymentDate time.Time) (*Payment, error) {
	query := `
		INSERT INTO payments (id, house_id, from_user_id, to_user_id, amount, memo, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, house_id, from_user_id, to_user_id, amount, memo, payment_date, created_at
	`

	p := &Payment{}
	err := q.QueryRowContext(ctx, query,
		uuid.NewString(),
		houseID,
		fromUserID,
		req.ToUserID,
		req.Amount,
		req.Memo,
		paymentDate,
	).Scan(
		&p.ID,
		&p.HouseID,
		&p.FromUserID,
		&p.ToUserID,
		&p.Amount,
		&p.Memo,
		&p.PaymentDate,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return p, nil
}

// ListByHouse retrieves payments of a house, newest first. When userID is
// non-empty only payments involving that user are returned.
func (r *Repository) ListByHouse(ctx context.Context, houseID, userID string) ([]*Payment, error) {
	query := `
		SELECT id, house_id, from_user_id, to_user_id, amount, memo, payment_date, created_at
		FROM payments
		WHERE house_id = $1 AND ($2 = '' OR from_user_id = $2 OR to_user_id = $2)
		ORDER BY payment_date DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, houseID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p := &Payment{}
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
