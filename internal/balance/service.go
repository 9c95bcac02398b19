package balance

import (
	"context"
	"errors"
	"math"

	"github.com/mshalabi/housemate/internal/database"
	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/pkg/metrics"
)

// ErrSamePair is returned when a transfer names the same user twice
var ErrSamePair = errors.New("transfer debtor and creditor must differ")

// Store defines the balance persistence the ledger needs
type Store interface {
	GetForUpdate(ctx context.Context, q database.DBTX, houseID, lowID, highID string) (*Balance, error)
	Upsert(ctx context.Context, q database.DBTX, b *Balance) error
	Delete(ctx context.Context, q database.DBTX, houseID, lowID, highID string) error
	ListByHouse(ctx context.Context, houseID string) ([]*Balance, error)
	ListByUser(ctx context.Context, houseID, userID string) ([]*Balance, error)
}

// MemberDirectory resolves house-scoped display identities
type MemberDirectory interface {
	MembersMap(ctx context.Context, houseID string) (map[string]house.Member, error)
	RequireMember(ctx context.Context, userID, houseID string) error
}

// Ledger owns the pairwise balance table. Every expense share and payment
// flows through ApplyTransfer, which keeps exactly one signed row per
// unordered pair and prunes rows settled to within Epsilon.
type Ledger struct {
	store   Store
	members MemberDirectory
}

// NewLedger creates a new balance ledger
func NewLedger(store Store, members MemberDirectory) *Ledger {
	return &Ledger{store: store, members: members}
}

// ApplyTransfer records that debtorID owes creditorID an additional
// amount. A negative amount reduces the debt, which is how payments are
// applied. Must be called inside the transaction that persists the
// expense or payment driving it, so both succeed or fail together.
func (l *Ledger) ApplyTransfer(ctx context.Context, q database.DBTX, houseID, debtorID, creditorID string, amount float64) error {
	if debtorID == creditorID {
		return ErrSamePair
	}

	lowID, highID := canonicalPair(debtorID, creditorID)

	b, err := l.store.GetForUpdate(ctx, q, houseID, lowID, highID)
	if err != nil {
		return err
	}

	// In the low→high sign convention the delta is positive when the
	// debtor is the low user, negative otherwise.
	delta := amount
	if debtorID != lowID {
		delta = -amount
	}

	if b == nil {
		if math.Abs(delta) < Epsilon {
			return nil
		}
		b = &Balance{
			HouseID:    houseID,
			UserLowID:  lowID,
			UserHighID: highID,
		}
	}

	b.Amount = round2(b.Amount + delta)

	if math.Abs(b.Amount) < Epsilon {
		if b.ID == "" {
			return nil
		}
		if err := l.store.Delete(ctx, q, houseID, lowID, highID); err != nil {
			return err
		}
		metrics.BalancesSettled.Inc()
		return nil
	}

	return l.store.Upsert(ctx, q, b)
}

// HouseBalances returns all outstanding debts of a house in
// debtor/creditor form with display identities resolved
func (l *Ledger) HouseBalances(ctx context.Context, userID, houseID string) ([]*BalanceEntry, error) {
	if err := l.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	balances, err := l.store.ListByHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}

	members, err := l.members.MembersMap(ctx, houseID)
	if err != nil {
		return nil, err
	}

	entries := make([]*BalanceEntry, 0, len(balances))
	for _, b := range balances {
		info := b.DebtInfo()
		if info == nil {
			continue
		}
		entries = append(entries, &BalanceEntry{
			ID:        b.ID,
			Amount:    info.Amount,
			FromUser:  resolveMember(info.DebtorID, members),
			ToUser:    resolveMember(info.CreditorID, members),
			UpdatedAt: b.UpdatedAt,
		})
	}

	return entries, nil
}

// UserBalances returns the outstanding debts touching a user, each tagged
// from that user's perspective
func (l *Ledger) UserBalances(ctx context.Context, userID, houseID string) ([]*UserBalanceEntry, error) {
	if err := l.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	balances, err := l.store.ListByUser(ctx, houseID, userID)
	if err != nil {
		return nil, err
	}

	members, err := l.members.MembersMap(ctx, houseID)
	if err != nil {
		return nil, err
	}

	entries := make([]*UserBalanceEntry, 0, len(balances))
	for _, b := range balances {
		info := b.DebtInfo()
		if info == nil || !b.Touches(userID) {
			continue
		}

		entry := &UserBalanceEntry{
			ID:        b.ID,
			Amount:    info.Amount,
			UpdatedAt: b.UpdatedAt,
		}
		if info.DebtorID == userID {
			entry.Type = DebtTypeOwes
			entry.OtherUser = resolveMember(info.CreditorID, members)
		} else {
			entry.Type = DebtTypeOwedBy
			entry.OtherUser = resolveMember(info.DebtorID, members)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// resolveMember falls back to a bare identity when the user is no longer
// an active member (e.g. left the house with debts outstanding)
func resolveMember(userID string, members map[string]house.Member) house.Member {
	if m, ok := members[userID]; ok {
		return m
	}
	return house.Member{ID: userID}
}
