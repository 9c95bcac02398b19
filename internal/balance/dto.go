package balance

import (
	"time"

	"github.com/mshalabi/housemate/internal/house"
)

// DebtType tags a balance from the requesting user's perspective
type DebtType string

const (
	DebtTypeOwes   DebtType = "owes"
	DebtTypeOwedBy DebtType = "owed_by"
)

// BalanceEntry is a house balance resolved to debtor/creditor form
type BalanceEntry struct {
	ID        string       `json:"id"`
	Amount    float64      `json:"amount"`
	FromUser  house.Member `json:"from_user"`
	ToUser    house.Member `json:"to_user"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// UserBalanceEntry is a balance tagged from one user's perspective
type UserBalanceEntry struct {
	ID        string       `json:"id"`
	Amount    float64      `json:"amount"`
	Type      DebtType     `json:"type"`
	OtherUser house.Member `json:"other_user"`
	UpdatedAt time.Time    `json:"updated_at"`
}
