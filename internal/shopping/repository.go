package shopping

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mshalabi/housemate/internal/database"
)

const itemColumns = `id, house_id, name, quantity, notes, category_id, assigned_to_id,
	purchased_at, purchased_by_id, is_recurring, recurring_interval, last_recurred_at,
	created_at, updated_at`

// Repository handles shopping item persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a new, unpurchased shopping item
func (r *Repository) Insert(ctx context.Context, item *Item) (*Item, error) {
	query := `
		INSERT INTO shopping_items (id, house_id, name, quantity, notes, category_id, assigned_to_id, is_recurring, recurring_interval)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + itemColumns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(),
		item.HouseID,
		item.Name,
		item.Quantity,
		item.Notes,
		item.CategoryID,
		item.AssignedToID,
		item.IsRecurring,
		item.RecurringInterval,
	)

	saved, err := scanItem(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}
	return saved, nil
}

// Get retrieves an item by ID, or nil when it does not exist
func (r *Repository) Get(ctx context.Context, itemID string) (*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM shopping_items WHERE id = $1`

	item, err := scanItem(r.db.QueryRowContext(ctx, query, itemID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// GetMany retrieves the items with the given IDs
func (r *Repository) GetMany(ctx context.Context, itemIDs []string) ([]*Item, error) {
	query := `SELECT ` + itemColumns + ` FROM shopping_items WHERE id = ANY($1)`
	return r.list(ctx, query, pq.Array(itemIDs))
}

// List retrieves items of a house, newest first, applying the filter
func (r *Repository) List(ctx context.Context, houseID string, f ListFilter) ([]*Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM shopping_items
		WHERE house_id = $1
		  AND ($2 OR purchased_at IS NULL)
		  AND ($3 = '' OR category_id = $3)
		  AND ($4 = '' OR assigned_to_id = $4)
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, houseID, f.IncludePurchased, f.CategoryID, f.AssignedToID)
}

// MarkPurchased stamps the items as purchased by the user at the given time
func (r *Repository) MarkPurchased(ctx context.Context, itemIDs []string, userID string, at time.Time) error {
	query := `
		UPDATE shopping_items
		SET purchased_at = $2, purchased_by_id = $3, updated_at = NOW()
		WHERE id = ANY($1)
	`
	if _, err := r.db.ExecContext(ctx, query, pq.Array(itemIDs), at, userID); err != nil {
		return fmt.Errorf("failed to mark items purchased: %w", err)
	}
	return nil
}

// Delete removes an item
func (r *Repository) Delete(ctx context.Context, itemID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// RecurringPurchasedSince retrieves the recurring items of a house
// purchased after the given time, most recently purchased first
func (r *Repository) RecurringPurchasedSince(ctx context.Context, houseID string, since time.Time) ([]*Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM shopping_items
		WHERE house_id = $1
		  AND is_recurring = TRUE
		  AND purchased_at IS NOT NULL
		  AND purchased_at > $2
		ORDER BY purchased_at DESC
	`
	return r.list(ctx, query, houseID, since)
}

// PurchasedItems retrieves the purchase history of a house, newest first
func (r *Repository) PurchasedItems(ctx context.Context, houseID string) ([]*Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM shopping_items
		WHERE house_id = $1 AND purchased_at IS NOT NULL
		ORDER BY purchased_at DESC
	`
	return r.list(ctx, query, houseID)
}

// DueRecurring retrieves, across all houses, the recurring items whose
// return interval has elapsed and whose cycle has not regenerated yet
func (r *Repository) DueRecurring(ctx context.Context, now time.Time) ([]*Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM shopping_items
		WHERE is_recurring = TRUE
		  AND purchased_at IS NOT NULL
		  AND purchased_at + make_interval(days => recurring_interval) <= $1
		  AND (last_recurred_at IS NULL OR last_recurred_at < purchased_at)
	`
	return r.list(ctx, query, now)
}

// Regenerate inserts a fresh copy of a purchased recurring item and
// stamps the original's lastRecurredAt, atomically
func (r *Repository) Regenerate(ctx context.Context, original *Item, now time.Time) error {
	return database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		insert := `
			INSERT INTO shopping_items (id, house_id, name, quantity, notes, category_id, assigned_to_id, is_recurring, recurring_interval)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`
		if _, err := tx.ExecContext(ctx, insert,
			uuid.NewString(),
			original.HouseID,
			original.Name,
			original.Quantity,
			original.Notes,
			original.CategoryID,
			original.AssignedToID,
			original.IsRecurring,
			original.RecurringInterval,
		); err != nil {
			return fmt.Errorf("failed to insert regenerated item: %w", err)
		}

		stamp := `UPDATE shopping_items SET last_recurred_at = $2, updated_at = NOW() WHERE id = $1`
		if _, err := tx.ExecContext(ctx, stamp, original.ID, now); err != nil {
			return fmt.Errorf("failed to stamp last_recurred_at: %w", err)
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	item := &Item{}
	err := row.Scan(
		&item.ID,
		&item.HouseID,
		&item.Name,
		&item.Quantity,
		&item.Notes,
		&item.CategoryID,
		&item.AssignedToID,
		&item.PurchasedAt,
		&item.PurchasedByID,
		&item.IsRecurring,
		&item.RecurringInterval,
		&item.LastRecurredAt,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Repository) list(ctx context.Context, query string, args ...any) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}
