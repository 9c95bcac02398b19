package transaction

import (
	"time"

	"github.com/mshalabi/housemate/internal/house"
)

// Kind distinguishes the two transaction types in the merged feed
type Kind string

const (
	KindExpense Kind = "expense"
	KindPayment Kind = "payment"
	KindAll     Kind = "all"
)

// Filter narrows the transaction feed. Zero Start/End fall back to the
// default one-month window ending now.
type Filter struct {
	UserOnly bool
	Start    time.Time
	End      time.Time
	Kind     Kind
}

// Entry is one row of the merged chronological feed. Expense entries
// carry the payer, split participants and the requesting user's share;
// payment entries carry both parties.
type Entry struct {
	ID           string         `json:"id"`
	Type         Kind           `json:"type"`
	Description  string         `json:"description,omitempty"`
	Amount       float64        `json:"amount"`
	UserShare    float64        `json:"user_share"`
	Date         time.Time      `json:"date"`
	CategoryID   string         `json:"category_id,omitempty"`
	PaidBy       *house.Member  `json:"paid_by,omitempty"`
	SplitBetween []house.Member `json:"split_between,omitempty"`
	FromUser     *house.Member  `json:"from_user,omitempty"`
	ToUser       *house.Member  `json:"to_user,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
