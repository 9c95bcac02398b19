package expense

import (
	"time"

	"github.com/mshalabi/housemate/internal/category"
	"github.com/mshalabi/housemate/internal/house"
)

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	Description  string   `json:"description"`
	Amount       float64  `json:"amount"`
	ExpenseDate  string   `json:"expense_date"` // YYYY-MM-DD
	ReceiptURL   *string  `json:"receipt_url,omitempty"`
	SplitBetween []string `json:"split_between"`
	CategoryID   string   `json:"category_id"`
}

// ExpenseResponse is an expense enriched with payer and category detail
type ExpenseResponse struct {
	ID              string             `json:"id"`
	HouseID         string             `json:"house_id"`
	Description     string             `json:"description"`
	Amount          float64            `json:"amount"`
	AmountPerPerson float64            `json:"amount_per_person"`
	ExpenseDate     time.Time          `json:"expense_date"`
	ReceiptURL      *string            `json:"receipt_url,omitempty"`
	PaidBy          house.Member       `json:"paid_by"`
	Category        *category.Category `json:"category,omitempty"`
	SplitBetween    []house.Member     `json:"split_between"`
	CreatedAt       time.Time          `json:"created_at"`
}
