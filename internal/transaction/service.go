package transaction

import (
	"context"
	"sort"
	"time"

	"github.com/mshalabi/housemate/internal/expense"
	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/internal/payment"
)

// Members is the membership gate and display-identity directory
type Members interface {
	RequireMember(ctx context.Context, userID, houseID string) error
	MembersMap(ctx context.Context, houseID string) (map[string]house.Member, error)
}

// Store defines the window-filtered reads the aggregator needs
type Store interface {
	Expenses(ctx context.Context, houseID, userID string, start, end time.Time) ([]*expense.Expense, error)
	Payments(ctx context.Context, houseID, userID string, start, end time.Time) ([]*payment.Payment, error)
}

// Service merges expenses and payments into a single chronological feed
type Service struct {
	store   Store
	members Members
	now     func() time.Time
}

// NewService creates a new transaction service
func NewService(store Store, members Members) *Service {
	return &Service{
		store:   store,
		members: members,
		now:     time.Now,
	}
}

// HouseTransactions returns the merged feed of a house, newest first,
// with each user resolved to their house-scoped display identity
func (s *Service) HouseTransactions(ctx context.Context, userID, houseID string, f Filter) ([]*Entry, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	start, end := f.Start, f.End
	if start.IsZero() && end.IsZero() {
		end = s.now()
		start = end.AddDate(0, -1, 0)
	} else if end.IsZero() {
		end = s.now()
	}

	filterUser := ""
	if f.UserOnly {
		filterUser = userID
	}

	var (
		expenses []*expense.Expense
		payments []*payment.Payment
		err      error
	)

	if f.Kind == "" || f.Kind == KindAll || f.Kind == KindExpense {
		expenses, err = s.store.Expenses(ctx, houseID, filterUser, start, end)
		if err != nil {
			return nil, err
		}
	}
	if f.Kind == "" || f.Kind == KindAll || f.Kind == KindPayment {
		payments, err = s.store.Payments(ctx, houseID, filterUser, start, end)
		if err != nil {
			return nil, err
		}
	}

	members, err := s.members.MembersMap(ctx, houseID)
	if err != nil {
		return nil, err
	}

	return mergeEntries(userID, expenses, payments, members), nil
}

// mergeEntries fans both transaction kinds into one list sorted by date
// descending. The sort is stable, so ties keep fetch order.
func mergeEntries(userID string, expenses []*expense.Expense, payments []*payment.Payment, members map[string]house.Member) []*Entry {
	entries := make([]*Entry, 0, len(expenses)+len(payments))

	for _, e := range expenses {
		userShare := 0.0
		if e.InSplit(userID) {
			userShare = e.SharePerPerson()
		}

		paidBy := resolveMember(e.PaidByID, members)
		split := make([]house.Member, len(e.SplitBetween))
		for i, id := range e.SplitBetween {
			split[i] = resolveMember(id, members)
		}

		entries = append(entries, &Entry{
			ID:           e.ID,
			Type:         KindExpense,
			Description:  e.Description,
			Amount:       e.Amount,
			UserShare:    userShare,
			Date:         e.ExpenseDate,
			CategoryID:   e.CategoryID,
			PaidBy:       &paidBy,
			SplitBetween: split,
			CreatedAt:    e.CreatedAt,
		})
	}

	for _, p := range payments {
		memo := ""
		if p.Memo != nil {
			memo = *p.Memo
		}
		from := resolveMember(p.FromUserID, members)
		to := resolveMember(p.ToUserID, members)

		entries = append(entries, &Entry{
			ID:          p.ID,
			Type:        KindPayment,
			Description: memo,
			Amount:      p.Amount,
			Date:        p.PaymentDate,
			FromUser:    &from,
			ToUser:      &to,
			CreatedAt:   p.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})

	return entries
}

func resolveMember(userID string, members map[string]house.Member) house.Member {
	if m, ok := members[userID]; ok {
		return m
	}
	return house.Member{ID: userID}
}
