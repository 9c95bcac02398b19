package payment

import (
	"time"

	"github.com/mshalabi/housemate/internal/house"
)

// CreatePaymentRequest represents the request to record a payment
type CreatePaymentRequest struct {
	Amount      float64 `json:"amount"`
	ToUserID    string  `json:"to_user_id"`
	Memo        *string `json:"memo,omitempty"`
	PaymentDate string  `json:"payment_date"` // YYYY-MM-DD
}

// PaymentResponse is a payment enriched with both display identities
type PaymentResponse struct {
	ID          string       `json:"id"`
	HouseID     string       `json:"house_id"`
	Amount      float64      `json:"amount"`
	Memo        *string      `json:"memo,omitempty"`
	PaymentDate time.Time    `json:"payment_date"`
	FromUser    house.Member `json:"from_user"`
	ToUser      house.Member `json:"to_user"`
	CreatedAt   time.Time    `json:"created_at"`
}
