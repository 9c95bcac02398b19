package house

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles house and membership persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new house repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveMembership returns the active membership of a user in a house,
// or nil when the user is not an active member
func (r *Repository) FindActiveMembership(ctx context.Context, userID, houseID string) (*Membership, error) {
	query := `
		SELECT id, house_id, user_id, display_name, color, is_active, joined_at
		FROM house_memberships
		WHERE user_id = $1 AND house_id = $2 AND is_active = TRUE
	`

	m := &Membership{}
	err := r.db.QueryRowContext(ctx, query, userID, houseID).Scan(
		&m.ID,
		&m.HouseID,
		&m.UserID,
		&m.DisplayName,
		&m.Color,
		&m.IsActive,
		&m.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}

	return m, nil
}

// ListActiveMembers retrieves all active memberships of a house
func (r *Repository) ListActiveMembers(ctx context.Context, houseID string) ([]*Membership, error) {
	query := `
		SELECT id, house_id, user_id, display_name, color, is_active, joined_at
		FROM house_memberships
		WHERE house_id = $1 AND is_active = TRUE
		ORDER BY joined_at
	`

	rows, err := r.db.QueryContext(ctx, query, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*Membership
	for rows.Next() {
		m := &Membership{}
		if err := rows.Scan(
			&m.ID,
			&m.HouseID,
			&m.UserID,
			&m.DisplayName,
			&m.Color,
			&m.IsActive,
			&m.JoinedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}

	return members, nil
}
