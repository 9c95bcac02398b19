package expense

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mshalabi/housemate/internal/category"
	"github.com/mshalabi/housemate/internal/database"
	"github.com/mshalabi/housemate/internal/house"
)

type fakeStore struct {
	expenses []*Expense
}

func (f *fakeStore) Create(ctx context.Context, q database.DBTX, houseID, payerID string, req *CreateExpenseRequest, expenseDate time.Time) (*Expense, error) {
	e := &Expense{
		ID:           "exp-1",
		HouseID:      houseID,
		PaidByID:     payerID,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
		Amount:       req.Amount,
		ExpenseDate:  expenseDate,
		ReceiptURL:   req.ReceiptURL,
		SplitBetween: req.SplitBetween,
	}
	f.expenses = append(f.expenses, e)
	return e, nil
}

func (f *fakeStore) ListByHouse(ctx context.Context, houseID string) ([]*Expense, error) {
	return f.expenses, nil
}

type fakeMembers struct {
	active map[string]bool
}

func (f *fakeMembers) RequireMember(ctx context.Context, userID, houseID string) error {
	if !f.active[userID] {
		return house.ErrNotMember
	}
	return nil
}

func (f *fakeMembers) IsActiveMember(ctx context.Context, userID, houseID string) (bool, error) {
	return f.active[userID], nil
}

func (f *fakeMembers) MembersMap(ctx context.Context, houseID string) (map[string]house.Member, error) {
	out := make(map[string]house.Member)
	for id := range f.active {
		out[id] = house.Member{ID: id, DisplayName: "name-" + id}
	}
	return out, nil
}

type fakeCategories struct {
	known map[string]bool
}

func (f *fakeCategories) FindInHouse(ctx context.Context, categoryID, houseID string) (*category.Category, error) {
	if !f.known[categoryID] {
		return nil, nil
	}
	return &category.Category{ID: categoryID, HouseID: houseID, Name: "Groceries"}, nil
}

type transfer struct {
	debtorID   string
	creditorID string
	amount     float64
}

type fakeLedger struct {
	transfers []transfer
}

func (f *fakeLedger) ApplyTransfer(ctx context.Context, q database.DBTX, houseID, debtorID, creditorID string, amount float64) error {
	f.transfers = append(f.transfers, transfer{debtorID, creditorID, amount})
	return nil
}

func testService(members []string) (*Service, *fakeStore, *fakeLedger) {
	m := &fakeMembers{active: make(map[string]bool)}
	for _, id := range members {
		m.active[id] = true
	}
	store := &fakeStore{}
	ledger := &fakeLedger{}
	svc := &Service{
		store:      store,
		members:    m,
		categories: &fakeCategories{known: map[string]bool{"cat-1": true}},
		ledger:     ledger,
		inTx: func(ctx context.Context, fn func(q database.DBTX) error) error {
			return fn(nil)
		},
	}
	return svc, store, ledger
}

func TestCreateExpenseSplitsAcrossMembers(t *testing.T) {
	svc, _, ledger := testService([]string{"alice", "bob", "carol", "dave"})

	resp, err := svc.CreateExpense(context.Background(), "alice", "h1", &CreateExpenseRequest{
		Description:  "groceries",
		Amount:       100,
		ExpenseDate:  "2026-08-15",
		CategoryID:   "cat-1",
		SplitBetween: []string{"alice", "bob", "carol", "dave"},
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	if resp.AmountPerPerson != 25 {
		t.Errorf("AmountPerPerson = %v, want 25", resp.AmountPerPerson)
	}

	// the payer's own share produces no transfer
	if len(ledger.transfers) != 3 {
		t.Fatalf("expected 3 transfers, got %d", len(ledger.transfers))
	}
	for _, tr := range ledger.transfers {
		if tr.creditorID != "alice" {
			t.Errorf("transfer creditor = %s, want alice", tr.creditorID)
		}
		if tr.debtorID == "alice" {
			t.Error("payer must not owe themselves")
		}
		if tr.amount != 25 {
			t.Errorf("transfer amount = %v, want 25", tr.amount)
		}
	}
}

func TestCreateExpenseUnevenSplit(t *testing.T) {
	svc, _, ledger := testService([]string{"alice", "bob", "carol"})

	resp, err := svc.CreateExpense(context.Background(), "alice", "h1", &CreateExpenseRequest{
		Description:  "utilities",
		Amount:       100,
		ExpenseDate:  "2026-08-15",
		CategoryID:   "cat-1",
		SplitBetween: []string{"alice", "bob", "carol"},
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	// 100/3 rounds to 33.33 per head; the fractional cent is absorbed,
	// not redistributed
	if resp.AmountPerPerson != 33.33 {
		t.Errorf("AmountPerPerson = %v, want 33.33", resp.AmountPerPerson)
	}
	for _, tr := range ledger.transfers {
		if tr.amount != 33.33 {
			t.Errorf("transfer amount = %v, want 33.33", tr.amount)
		}
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	tests := []struct {
		name    string
		payer   string
		req     CreateExpenseRequest
		wantErr error
	}{
		{
			name:  "zero amount",
			payer: "alice",
			req: CreateExpenseRequest{
				Amount: 0, ExpenseDate: "2026-08-15", CategoryID: "cat-1",
				SplitBetween: []string{"alice"},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:  "negative amount",
			payer: "alice",
			req: CreateExpenseRequest{
				Amount: -5, ExpenseDate: "2026-08-15", CategoryID: "cat-1",
				SplitBetween: []string{"alice"},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:  "empty split",
			payer: "alice",
			req: CreateExpenseRequest{
				Amount: 10, ExpenseDate: "2026-08-15", CategoryID: "cat-1",
			},
			wantErr: ErrEmptySplit,
		},
		{
			name:  "bad date",
			payer: "alice",
			req: CreateExpenseRequest{
				Amount: 10, ExpenseDate: "15/08/2026", CategoryID: "cat-1",
				SplitBetween: []string{"alice"},
			},
			wantErr: ErrInvalidDate,
		},
		{
			name:  "payer not a member",
			payer: "stranger",
			req: CreateExpenseRequest{
				Amount: 10, ExpenseDate: "2026-08-15", CategoryID: "cat-1",
				SplitBetween: []string{"alice"},
			},
			wantErr: house.ErrNotMember,
		},
		{
			name:  "membership checked before input validation",
			payer: "stranger",
			req: CreateExpenseRequest{
				Amount: -1, ExpenseDate: "not-a-date", CategoryID: "cat-404",
			},
			wantErr: house.ErrNotMember,
		},
		{
			name:  "unknown category",
			payer: "alice",
			req: CreateExpenseRequest{
				Amount: 10, ExpenseDate: "2026-08-15", CategoryID: "cat-404",
				SplitBetween: []string{"alice"},
			},
			wantErr: ErrCategoryNotFound,
		},
		{
			name:  "split user not in house",
			payer: "alice",
			req: CreateExpenseRequest{
				Amount: 10, ExpenseDate: "2026-08-15", CategoryID: "cat-1",
				SplitBetween: []string{"alice", "stranger"},
			},
			wantErr: ErrSplitNotInHouse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, ledger := testService([]string{"alice", "bob"})
			_, err := svc.CreateExpense(context.Background(), tt.payer, "h1", &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateExpense() error = %v, want %v", err, tt.wantErr)
			}
			if len(ledger.transfers) != 0 {
				t.Errorf("expected no transfers on validation failure, got %d", len(ledger.transfers))
			}
		})
	}
}

func TestSharePerPerson(t *testing.T) {
	tests := []struct {
		amount float64
		n      int
		want   float64
	}{
		{100, 4, 25},
		{100, 3, 33.33},
		{0.05, 2, 0.03},
		{10, 1, 10},
	}

	for _, tt := range tests {
		if got := sharePerPerson(tt.amount, tt.n); got != tt.want {
			t.Errorf("sharePerPerson(%v, %d) = %v, want %v", tt.amount, tt.n, got, tt.want)
		}
	}
}
