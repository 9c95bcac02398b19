package shopping

import (
	"time"

	"github.com/mshalabi/housemate/internal/house"
)

// CreateItemRequest represents the request to add a shopping item
type CreateItemRequest struct {
	Name              string  `json:"name"`
	Quantity          float64 `json:"quantity,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	CategoryID        *string `json:"category_id,omitempty"`
	AssignedToID      *string `json:"assigned_to_id,omitempty"`
	IsRecurring       bool    `json:"is_recurring,omitempty"`
	RecurringInterval *int    `json:"recurring_interval,omitempty"`
	Force             bool    `json:"force,omitempty"`
}

// BatchPurchaseRequest represents the request to purchase several items
type BatchPurchaseRequest struct {
	ItemIDs []string `json:"item_ids"`
}

// ListFilter narrows the item listing
type ListFilter struct {
	IncludePurchased bool
	CategoryID       string
	AssignedToID     string
}

// ItemResponse is a shopping item with assignee and purchaser resolved to
// house-scoped display identities
type ItemResponse struct {
	ID                string        `json:"id"`
	HouseID           string        `json:"house_id"`
	Name              string        `json:"name"`
	Quantity          float64       `json:"quantity"`
	Notes             *string       `json:"notes,omitempty"`
	CategoryID        *string       `json:"category_id,omitempty"`
	AssignedTo        *house.Member `json:"assigned_to,omitempty"`
	PurchasedAt       *time.Time    `json:"purchased_at,omitempty"`
	PurchasedBy       *house.Member `json:"purchased_by,omitempty"`
	IsRecurring       bool          `json:"is_recurring"`
	RecurringInterval *int          `json:"recurring_interval,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
}

// RecurringItemView is an ItemResponse with the recurrence countdown
type RecurringItemView struct {
	ItemResponse
	DaysUntilReturn int  `json:"days_until_return"`
	HasRecurred     bool `json:"has_recurred"`
}
