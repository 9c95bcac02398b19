package balance

import (
	"math"
	"strings"
	"time"
)

// Epsilon is the threshold below which a balance counts as settled.
// Rows whose magnitude falls under it are deleted, never stored.
const Epsilon = 0.01

// Balance is the signed net debt between an ordered pair of users within
// one house. The pair is stored canonically (byte-wise smaller user ID
// first) so at most one row exists per unordered pair per house.
// Amount > 0 means the low user owes the high user; negative the reverse.
type Balance struct {
	ID         string    `json:"id"`
	HouseID    string    `json:"house_id"`
	UserLowID  string    `json:"user_low_id"`
	UserHighID string    `json:"user_high_id"`
	Amount     float64   `json:"amount"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DebtInfo resolves a signed balance to debtor/creditor form
type DebtInfo struct {
	DebtorID   string
	CreditorID string
	Amount     float64
}

// DebtInfo returns who owes whom, or nil when the balance is settled
func (b *Balance) DebtInfo() *DebtInfo {
	if math.Abs(b.Amount) < Epsilon {
		return nil
	}
	if b.Amount > 0 {
		return &DebtInfo{
			DebtorID:   b.UserLowID,
			CreditorID: b.UserHighID,
			Amount:     b.Amount,
		}
	}
	return &DebtInfo{
		DebtorID:   b.UserHighID,
		CreditorID: b.UserLowID,
		Amount:     -b.Amount,
	}
}

// Touches reports whether the balance involves the given user
func (b *Balance) Touches(userID string) bool {
	return b.UserLowID == userID || b.UserHighID == userID
}

// canonicalPair orders two user IDs by byte-wise comparison of their
// string form. The order has no intrinsic meaning; it is only a stable
// tie-break for storage-row identity.
func canonicalPair(a, b string) (lowID, highID string) {
	if strings.Compare(a, b) < 0 {
		return a, b
	}
	return b, a
}

// round2 rounds a currency amount to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
