package shopping

import (
	"math"
	"time"
)

// Item represents one entry on a house's shopping list. purchasedAt is
// null until bought; lastRecurredAt tracks whether the current purchase
// cycle has already regenerated the item.
type Item struct {
	ID                string     `json:"id"`
	HouseID           string     `json:"house_id"`
	Name              string     `json:"name"`
	Quantity          float64    `json:"quantity"`
	Notes             *string    `json:"notes,omitempty"`
	CategoryID        *string    `json:"category_id,omitempty"`
	AssignedToID      *string    `json:"assigned_to_id,omitempty"`
	PurchasedAt       *time.Time `json:"purchased_at,omitempty"`
	PurchasedByID     *string    `json:"purchased_by_id,omitempty"`
	IsRecurring       bool       `json:"is_recurring"`
	RecurringInterval *int       `json:"recurring_interval,omitempty"` // days
	LastRecurredAt    *time.Time `json:"last_recurred_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// HasRecurred reports whether the current purchase cycle has already
// produced a regenerated item
func (i *Item) HasRecurred() bool {
	if i.LastRecurredAt == nil || i.PurchasedAt == nil {
		return false
	}
	return !i.LastRecurredAt.Before(*i.PurchasedAt)
}

// DaysUntilReturn is the countdown until a purchased recurring item
// reappears on the list, floored at zero. Items without a purchase date
// or interval return 0.
func (i *Item) DaysUntilReturn(now time.Time) int {
	if i.PurchasedAt == nil || i.RecurringInterval == nil {
		return 0
	}

	returnDate := i.PurchasedAt.Add(time.Duration(*i.RecurringInterval) * 24 * time.Hour)
	days := int(math.Ceil(returnDate.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// dueForRegeneration reports whether the sweep should regenerate the
// item: purchased, interval elapsed, and not yet recurred this cycle.
// The lastRecurredAt guard makes repeated sweeps idempotent.
func (i *Item) dueForRegeneration(now time.Time) bool {
	if !i.IsRecurring || i.PurchasedAt == nil || i.RecurringInterval == nil {
		return false
	}
	returnDate := i.PurchasedAt.Add(time.Duration(*i.RecurringInterval) * 24 * time.Hour)
	return !returnDate.After(now) && !i.HasRecurred()
}
