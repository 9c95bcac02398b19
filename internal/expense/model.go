package expense

import "time"

// Expense represents an amount paid by one member, split across a set of
// house members. Expenses are immutable once their balances are applied.
type Expense struct {
	ID           string    `json:"id"`
	HouseID      string    `json:"house_id"`
	PaidByID     string    `json:"paid_by_id"`
	CategoryID   string    `json:"category_id"`
	Description  string    `json:"description"`
	Amount       float64   `json:"amount"`
	ExpenseDate  time.Time `json:"expense_date"`
	ReceiptURL   *string   `json:"receipt_url,omitempty"`
	SplitBetween []string  `json:"split_between"`
	CreatedAt    time.Time `json:"created_at"`
}

// SharePerPerson returns each participant's equal share of the expense
func (e *Expense) SharePerPerson() float64 {
	if len(e.SplitBetween) == 0 {
		return 0
	}
	return sharePerPerson(e.Amount, len(e.SplitBetween))
}

// InSplit reports whether the user participates in the split
func (e *Expense) InSplit(userID string) bool {
	for _, id := range e.SplitBetween {
		if id == userID {
			return true
		}
	}
	return false
}
