package expense

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mshalabi/housemate/internal/category"
	"github.com/mshalabi/housemate/internal/database"
	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/pkg/metrics"
)

// Common errors
var (
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrEmptySplit       = errors.New("split_between must not be empty")
	ErrInvalidDate      = errors.New("expense date must be a valid date (YYYY-MM-DD)")
	ErrCategoryNotFound = errors.New("category not found in this house")
	ErrSplitNotInHouse  = errors.New("one or more users in split_between are not members of this house")
)

// Members is the membership gate and display-identity directory
type Members interface {
	RequireMember(ctx context.Context, userID, houseID string) error
	IsActiveMember(ctx context.Context, userID, houseID string) (bool, error)
	MembersMap(ctx context.Context, houseID string) (map[string]house.Member, error)
}

// Categories verifies house-scoped category references
type Categories interface {
	FindInHouse(ctx context.Context, categoryID, houseID string) (*category.Category, error)
}

// Ledger applies balance transfers inside the expense transaction
type Ledger interface {
	ApplyTransfer(ctx context.Context, q database.DBTX, houseID, debtorID, creditorID string, amount float64) error
}

// Store defines the expense persistence the service needs
type Store interface {
	Create(ctx context.Context, q database.DBTX, houseID, payerID string, req *CreateExpenseRequest, expenseDate time.Time) (*Expense, error)
	ListByHouse(ctx context.Context, houseID string) ([]*Expense, error)
}

// Service splits expenses across house members and distributes each
// non-payer share onto the balance ledger
type Service struct {
	store      Store
	members    Members
	categories Categories
	ledger     Ledger
	inTx       func(ctx context.Context, fn func(q database.DBTX) error) error
}

// NewService creates a new expense service
func NewService(db *sql.DB, store Store, members Members, categories Categories, ledger Ledger) *Service {
	return &Service{
		store:      store,
		members:    members,
		categories: categories,
		ledger:     ledger,
		inTx: func(ctx context.Context, fn func(q database.DBTX) error) error {
			return database.InTx(ctx, db, func(tx *sql.Tx) error { return fn(tx) })
		},
	}
}

// CreateExpense validates an expense, persists it and applies one balance
// transfer per non-payer participant, all in a single transaction
func (s *Service) CreateExpense(ctx context.Context, payerID, houseID string, req *CreateExpenseRequest) (*ExpenseResponse, error) {
	// Membership comes before input validation so non-members learn
	// nothing about the request's validity.
	if err := s.members.RequireMember(ctx, payerID, houseID); err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(req.SplitBetween) == 0 {
		return nil, ErrEmptySplit
	}

	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	cat, err := s.categories.FindInHouse(ctx, req.CategoryID, houseID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrCategoryNotFound
	}

	if err := s.verifySplitMembers(ctx, houseID, req.SplitBetween); err != nil {
		return nil, err
	}

	share := sharePerPerson(req.Amount, len(req.SplitBetween))

	var saved *Expense
	err = s.inTx(ctx, func(q database.DBTX) error {
		saved, err = s.store.Create(ctx, q, houseID, payerID, req, expenseDate)
		if err != nil {
			return err
		}

		// The payer's own share creates no transfer; you cannot owe
		// yourself.
		for _, splitUserID := range req.SplitBetween {
			if splitUserID == payerID {
				continue
			}
			if err := s.ledger.ApplyTransfer(ctx, q, houseID, splitUserID, payerID, share); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ExpensesCreated.Inc()

	return s.toResponse(ctx, saved, cat)
}

// verifySplitMembers checks every split participant concurrently. All ids
// are checked before pass/fail is decided; the error does not say which
// ones failed.
func (s *Service) verifySplitMembers(ctx context.Context, houseID string, userIDs []string) error {
	g, gctx := errgroup.WithContext(ctx)
	results := make([]bool, len(userIDs))

	for i, userID := range userIDs {
		i, userID := i, userID
		g.Go(func() error {
			ok, err := s.members.IsActiveMember(gctx, userID, houseID)
			if err != nil {
				return err
			}
			results[i] = ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, ok := range results {
		if !ok {
			return ErrSplitNotInHouse
		}
	}
	return nil
}

// ListHouseExpenses returns all expenses of a house with payer identities
// resolved
func (s *Service) ListHouseExpenses(ctx context.Context, userID, houseID string) ([]*ExpenseResponse, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListByHouse(ctx, houseID)
	if err != nil {
		return nil, err
	}

	members, err := s.members.MembersMap(ctx, houseID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = buildResponse(e, nil, members)
	}
	return responses, nil
}

func (s *Service) toResponse(ctx context.Context, e *Expense, cat *category.Category) (*ExpenseResponse, error) {
	members, err := s.members.MembersMap(ctx, e.HouseID)
	if err != nil {
		return nil, err
	}
	return buildResponse(e, cat, members), nil
}

func buildResponse(e *Expense, cat *category.Category, members map[string]house.Member) *ExpenseResponse {
	split := make([]house.Member, len(e.SplitBetween))
	for i, id := range e.SplitBetween {
		split[i] = resolveMember(id, members)
	}

	return &ExpenseResponse{
		ID:              e.ID,
		HouseID:         e.HouseID,
		Description:     e.Description,
		Amount:          e.Amount,
		AmountPerPerson: e.SharePerPerson(),
		ExpenseDate:     e.ExpenseDate,
		ReceiptURL:      e.ReceiptURL,
		PaidBy:          resolveMember(e.PaidByID, members),
		Category:        cat,
		SplitBetween:    split,
		CreatedAt:       e.CreatedAt,
	}
}

func resolveMember(userID string, members map[string]house.Member) house.Member {
	if m, ok := members[userID]; ok {
		return m
	}
	return house.Member{ID: userID}
}

// sharePerPerson is the equal split of an amount, rounded to two
// decimals. Residual fractional cents from uneven splits are not
// redistributed; the ledger epsilon absorbs them.
func sharePerPerson(amount float64, n int) float64 {
	return math.Round(amount/float64(n)*100) / 100
}
