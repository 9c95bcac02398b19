package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mshalabi/housemate/internal/database"
)

// Repository handles balance row persistence. Methods used inside
// transfers take a database.DBTX so they join the caller's transaction.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetForUpdate loads the balance row for a canonical pair with a row-level
// lock, or returns nil when no row exists. Must run inside a transaction;
// the lock serializes concurrent transfers on the same pair.
func (r *Repository) GetForUpdate(ctx context.Context, q database.DBTX, houseID, lowID, highID string) (*Balance, error) {
	query := `
		SELECT id, house_id, user_low_id, user_high_id, amount, updated_at
		FROM balances
		WHERE house_id = $1 AND user_low_id = $2 AND user_high_id = $3
		FOR UPDATE
	`

	b := &Balance{}
	err := q.QueryRowContext(ctx, query, houseID, lowID, highID).Scan(
		&b.ID,
		&b.HouseID,
		&b.UserLowID,
		&b.UserHighID,
		&b.Amount,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	return b, nil
}

// Upsert inserts or updates the balance row for its canonical pair
func (r *Repository) Upsert(ctx context.Context, q database.DBTX, b *Balance) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}

	query := `
		INSERT INTO balances (id, house_id, user_low_id, user_high_id, amount, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (house_id, user_low_id, user_high_id)
		DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
	`

	if _, err := q.ExecContext(ctx, query, b.ID, b.HouseID, b.UserLowID, b.UserHighID, b.Amount); err != nil {
		return fmt.Errorf("failed to upsert balance: %w", err)
	}
	return nil
}

// Delete removes the balance row for a canonical pair
func (r *Repository) Delete(ctx context.Context, q database.DBTX, houseID, lowID, highID string) error {
	query := `DELETE FROM balances WHERE house_id = $1 AND user_low_id = $2 AND user_high_id = $3`
	if _, err := q.ExecContext(ctx, query, houseID, lowID, highID); err != nil {
		return fmt.Errorf("failed to delete balance: %w", err)
	}
	return nil
}

// ListByHouse retrieves all non-settled balances of a house
func (r *Repository) ListByHouse(ctx context.Context, houseID string) ([]*Balance, error) {
	query := `
		SELECT id, house_id, user_low_id, user_high_id, amount, updated_at
		FROM balances
		WHERE house_id = $1 AND ABS(amount) >= $2
		ORDER BY updated_at DESC
	`

	return r.list(ctx, query, houseID, Epsilon)
}

// ListByUser retrieves all non-settled balances of a house touching a user
func (r *Repository) ListByUser(ctx context.Context, houseID, userID string) ([]*Balance, error) {
	query := `
		SELECT id, house_id, user_low_id, user_high_id, amount, updated_at
		FROM balances
		WHERE house_id = $1 AND (user_low_id = $3 OR user_high_id = $3) AND ABS(amount) >= $2
		ORDER BY updated_at DESC
	`

	return r.list(ctx, query, houseID, Epsilon, userID)
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*Balance, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	defer rows.Close()

	var balances []*Balance
	for rows.Next() {
		b := &Balance{}
		if err := rows.Scan(
			&b.ID,
			&b.HouseID,
			&b.UserLowID,
			&b.UserHighID,
			&b.Amount,
			&b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, nil
}
