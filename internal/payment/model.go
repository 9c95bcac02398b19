package payment

import "time"

// Payment represents a direct transfer between two members of a house
type Payment struct {
	ID          string    `json:"id"`
	HouseID     string    `json:"house_id"`
	FromUserID  string    `json:"from_user_id"`
	ToUserID    string    `json:"to_user_id"`
	Amount      float64   `json:"amount"`
	Memo        *string   `json:"memo,omitempty"`
	PaymentDate time.Time `json:"payment_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// Involves reports whether the user is either party of the payment
func (p *Payment) Involves(userID string) bool {
	return p.FromUserID == userID || p.ToUserID == userID
}
