// Package category provides house-scoped expense and shopping categories.
package category

import (
	"context"
	"database/sql"
	"fmt"
)

// Category represents a house-scoped category
type Category struct {
	ID      string `json:"id"`
	HouseID string `json:"house_id"`
	Name    string `json:"name"`
	Icon    string `json:"icon,omitempty"`
}

// Repository handles category persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new category repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindInHouse returns the category if it belongs to the house, nil otherwise
func (r *Repository) FindInHouse(ctx context.Context, categoryID, houseID string) (*Category, error) {
	query := `SELECT id, house_id, name, icon FROM categories WHERE id = $1 AND house_id = $2`

	c := &Category{}
	err := r.db.QueryRowContext(ctx, query, categoryID, houseID).Scan(&c.ID, &c.HouseID, &c.Name, &c.Icon)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return c, nil
}

// ListByHouse retrieves all categories of a house
func (r *Repository) ListByHouse(ctx context.Context, houseID string) ([]*Category, error) {
	query := `SELECT id, house_id, name, icon FROM categories WHERE house_id = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.HouseID, &c.Name, &c.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, nil
}
