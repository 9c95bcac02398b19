package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mshalabi/housemate/internal/category"
	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/pkg/metrics"
)

type fakeStore struct {
	items  map[string]*Item
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]*Item)}
}

func (f *fakeStore) Insert(ctx context.Context, item *Item) (*Item, error) {
	f.nextID++
	copied := *item
	copied.ID = fmt.Sprintf("item-%d", f.nextID)
	f.items[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (f *fakeStore) Get(ctx context.Context, itemID string) (*Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, nil
	}
	copied := *item
	return &copied, nil
}

func (f *fakeStore) GetMany(ctx context.Context, itemIDs []string) ([]*Item, error) {
	var out []*Item
	for _, id := range itemIDs {
		if item, ok := f.items[id]; ok {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) List(ctx context.Context, houseID string, filter ListFilter) ([]*Item, error) {
	var out []*Item
	for _, item := range f.items {
		if item.HouseID != houseID {
			continue
		}
		if !filter.IncludePurchased && item.PurchasedAt != nil {
			continue
		}
		copied := *item
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStore) MarkPurchased(ctx context.Context, itemIDs []string, userID string, at time.Time) error {
	for _, id := range itemIDs {
		item, ok := f.items[id]
		if !ok {
			return errors.New("missing item")
		}
		purchasedAt := at
		item.PurchasedAt = &purchasedAt
		item.PurchasedByID = &userID
	}
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, itemID string) error {
	delete(f.items, itemID)
	return nil
}

func (f *fakeStore) RecurringPurchasedSince(ctx context.Context, houseID string, since time.Time) ([]*Item, error) {
	var out []*Item
	for _, item := range f.items {
		if item.HouseID != houseID || !item.IsRecurring || item.PurchasedAt == nil {
			continue
		}
		if item.PurchasedAt.Before(since) {
			continue
		}
		copied := *item
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStore) PurchasedItems(ctx context.Context, houseID string) ([]*Item, error) {
	var out []*Item
	for _, item := range f.items {
		if item.HouseID == houseID && item.PurchasedAt != nil {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) DueRecurring(ctx context.Context, now time.Time) ([]*Item, error) {
	var out []*Item
	for _, item := range f.items {
		if item.dueForRegeneration(now) {
			copied := *item
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeStore) Regenerate(ctx context.Context, original *Item, now time.Time) error {
	f.nextID++
	fresh := *original
	fresh.ID = fmt.Sprintf("item-%d", f.nextID)
	fresh.PurchasedAt = nil
	fresh.PurchasedByID = nil
	fresh.LastRecurredAt = nil
	f.items[fresh.ID] = &fresh

	stored, ok := f.items[original.ID]
	if !ok {
		return errors.New("missing item")
	}
	recurredAt := now
	stored.LastRecurredAt = &recurredAt
	return nil
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

func testService(now time.Time, members ...string) (*Service, *fakeStore) {
	m := &fakeMembers{active: make(map[string]bool)}
	for _, id := range members {
		m.active[id] = true
	}
	store := newFakeStore()
	svc := &Service{
		store:      store,
		members:    m,
		categories: &fakeCategories{known: map[string]bool{"cat-1": true}},
		now:        func() time.Time { return now },
	}
	return svc, store
}

func intPtr(v int) *int { return &v }

// seedRecurringPurchase stores a recurring item bought at the given time
func seedRecurringPurchase(store *fakeStore, houseID, name string, interval int, purchasedAt time.Time) *Item {
	store.nextID++
	id := fmt.Sprintf("item-%d", store.nextID)
	buyer := "alice"
	item := &Item{
		ID:                id,
		HouseID:           houseID,
		Name:              name,
		Quantity:          1,
		IsRecurring:       true,
		RecurringInterval: intPtr(interval),
		PurchasedAt:       &purchasedAt,
		PurchasedByID:     &buyer,
	}
	store.items[id] = item
	return item
}

func TestAddItemDuplicateRecurringWarning(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	svc, store := testService(now, "alice", "bob")

	// Milk bought 3 days ago on a 7-day cycle comes back in 4 days
	seedRecurringPurchase(store, "h1", "Milk", 7, now.Add(-3*24*time.Hour))

	_, err := svc.AddItem(context.Background(), "bob", "h1", &CreateItemRequest{Name: "milk 2%"})

	var dup *DuplicateItemError
	if !errors.As(err, &dup) {
		t.Fatalf("AddItem() error = %v, want DuplicateItemError", err)
	}
	if len(dup.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(dup.Warnings))
	}
	if !strings.Contains(dup.Warnings[0], `"Milk"`) || !strings.Contains(dup.Warnings[0], "4 day(s)") {
		t.Errorf("warning = %q, want mention of Milk returning in 4 day(s)", dup.Warnings[0])
	}
}

func TestAddItemForceOverridesWarning(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	svc, store := testService(now, "alice", "bob")

	seedRecurringPurchase(store, "h1", "Milk", 7, now.Add(-3*24*time.Hour))

	before := testutil.ToFloat64(metrics.DuplicateWarnings)

	resp, err := svc.AddItem(context.Background(), "bob", "h1", &CreateItemRequest{Name: "milk 2%", Force: true})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if resp.Name != "milk 2%" {
		t.Errorf("Name = %q, want milk 2%%", resp.Name)
	}

	// overridden warnings still count as raised
	if got := testutil.ToFloat64(metrics.DuplicateWarnings) - before; got != 1 {
		t.Errorf("duplicate warning counter delta = %v, want 1", got)
	}
}

func TestAddItemNoWarningCases(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		seed func(store *fakeStore)
	}{
		{
			name: "unrelated name",
			seed: func(store *fakeStore) {
				seedRecurringPurchase(store, "h1", "Bread", 7, now.Add(-3*24*time.Hour))
			},
		},
		{
			name: "purchase outside the two-week window",
			seed: func(store *fakeStore) {
				seedRecurringPurchase(store, "h1", "Milk", 30, now.Add(-20*24*time.Hour))
			},
		},
		{
			name: "interval already elapsed",
			seed: func(store *fakeStore) {
				seedRecurringPurchase(store, "h1", "Milk", 2, now.Add(-5*24*time.Hour))
			},
		},
		{
			name: "cycle already regenerated",
			seed: func(store *fakeStore) {
				item := seedRecurringPurchase(store, "h1", "Milk", 7, now.Add(-3*24*time.Hour))
				recurredAt := now.Add(-time.Hour)
				item.LastRecurredAt = &recurredAt
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := testService(now, "alice", "bob")
			tt.seed(store)

			_, err := svc.AddItem(context.Background(), "bob", "h1", &CreateItemRequest{Name: "milk"})
			if err != nil {
				t.Errorf("AddItem() error = %v, want success", err)
			}
		})
	}
}

func TestAddItemValidation(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	catID := "cat-404"
	assignee := "stranger"

	tests := []struct {
		name    string
		userID  string
		req     CreateItemRequest
		wantErr error
	}{
		{
			name:    "not a member",
			userID:  "stranger",
			req:     CreateItemRequest{Name: "milk"},
			wantErr: house.ErrNotMember,
		},
		{
			name:    "unknown category",
			userID:  "alice",
			req:     CreateItemRequest{Name: "milk", CategoryID: &catID},
			wantErr: ErrCategoryNotFound,
		},
		{
			name:    "assignee not in house",
			userID:  "alice",
			req:     CreateItemRequest{Name: "milk", AssignedToID: &assignee},
			wantErr: ErrAssigneeNotInHouse,
		},
		{
			name:    "recurring without interval",
			userID:  "alice",
			req:     CreateItemRequest{Name: "milk", IsRecurring: true},
			wantErr: ErrMissingInterval,
		},
		{
			name:    "recurring with non-positive interval",
			userID:  "alice",
			req:     CreateItemRequest{Name: "milk", IsRecurring: true, RecurringInterval: intPtr(0)},
			wantErr: ErrMissingInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := testService(now, "alice")
			_, err := svc.AddItem(context.Background(), tt.userID, "h1", &tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddItemDefaultQuantity(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := testService(now, "alice")

	resp, err := svc.AddItem(context.Background(), "alice", "h1", &CreateItemRequest{Name: "milk"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if resp.Quantity != 1 {
		t.Errorf("Quantity = %v, want default 1", resp.Quantity)
	}
}

func TestPurchaseItem(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := testService(now, "alice", "bob")
	ctx := context.Background()

	added, err := svc.AddItem(ctx, "alice", "h1", &CreateItemRequest{Name: "milk"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	resp, err := svc.PurchaseItem(ctx, "bob", "h1", added.ID)
	if err != nil {
		t.Fatalf("PurchaseItem() error = %v", err)
	}
	if resp.PurchasedAt == nil || !resp.PurchasedAt.Equal(now) {
		t.Errorf("PurchasedAt = %v, want %v", resp.PurchasedAt, now)
	}
	if resp.PurchasedBy == nil || resp.PurchasedBy.ID != "bob" {
		t.Errorf("PurchasedBy = %+v, want bob", resp.PurchasedBy)
	}

	if _, err := svc.PurchaseItem(ctx, "bob", "h1", added.ID); !errors.Is(err, ErrAlreadyPurchased) {
		t.Errorf("second purchase error = %v, want ErrAlreadyPurchased", err)
	}
}

func TestPurchaseItemForeignHouse(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := testService(now, "alice")
	ctx := context.Background()

	added, err := svc.AddItem(ctx, "alice", "h1", &CreateItemRequest{Name: "milk"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if _, err := svc.PurchaseItem(ctx, "alice", "h2", added.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("PurchaseItem() error = %v, want ErrItemNotFound", err)
	}
}

func TestBatchPurchaseAllOrNothing(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	svc, store := testService(now, "alice")
	ctx := context.Background()

	a, err := svc.AddItem(ctx, "alice", "h1", &CreateItemRequest{Name: "milk"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	b, err := svc.AddItem(ctx, "alice", "h1", &CreateItemRequest{Name: "bread"})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	if _, err := svc.BatchPurchaseItems(ctx, "alice", "h1", []string{a.ID, "item-404"}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("batch with unknown item error = %v, want ErrItemNotFound", err)
	}
	if store.items[a.ID].PurchasedAt != nil {
		t.Error("failed batch must not purchase any item")
	}

	resps, err := svc.BatchPurchaseItems(ctx, "alice", "h1", []string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("BatchPurchaseItems() error = %v", err)
	}
	if len(resps) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(resps))
	}
	for _, resp := range resps {
		if resp.PurchasedAt == nil || !resp.PurchasedAt.Equal(now) {
			t.Errorf("item %s PurchasedAt = %v, want shared timestamp %v", resp.ID, resp.PurchasedAt, now)
		}
	}

	if _, err := svc.BatchPurchaseItems(ctx, "alice", "h1", []string{a.ID, b.ID}); !errors.Is(err, ErrBatchInvalid) {
		t.Errorf("re-purchase batch error = %v, want ErrBatchInvalid", err)
	}
}

func TestRegenerateDueItemsIdempotent(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	svc, store := testService(now, "alice")
	ctx := context.Background()

	// 7-day cycle bought 8 days ago is overdue
	seedRecurringPurchase(store, "h1", "Milk", 7, now.Add(-8*24*time.Hour))

	count, err := svc.RegenerateDueItems(ctx, now)
	if err != nil {
		t.Fatalf("RegenerateDueItems() error = %v", err)
	}
	if count != 1 {
		t.Errorf("first sweep regenerated %d items, want 1", count)
	}
	if len(store.items) != 2 {
		t.Errorf("expected original plus regenerated copy, got %d items", len(store.items))
	}

	// repeated sweeps of the same cycle regenerate nothing
	count, err = svc.RegenerateDueItems(ctx, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("RegenerateDueItems() error = %v", err)
	}
	if count != 0 {
		t.Errorf("second sweep regenerated %d items, want 0", count)
	}
	if len(store.items) != 2 {
		t.Errorf("second sweep changed the item count to %d", len(store.items))
	}
}

func TestRecentRecurringItemsCountdown(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	svc, store := testService(now, "alice")

	seedRecurringPurchase(store, "h1", "Milk", 7, now.Add(-3*24*time.Hour))
	seedRecurringPurchase(store, "h1", "Rice", 30, now.Add(-40*24*time.Hour))

	views, err := svc.RecentRecurringItems(context.Background(), "alice", "h1")
	if err != nil {
		t.Fatalf("RecentRecurringItems() error = %v", err)
	}

	// the 40-day-old purchase falls outside the 30-day report window
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	if views[0].Name != "Milk" {
		t.Errorf("Name = %q, want Milk", views[0].Name)
	}
	if views[0].DaysUntilReturn != 4 {
		t.Errorf("DaysUntilReturn = %d, want 4", views[0].DaysUntilReturn)
	}
	if views[0].HasRecurred {
		t.Error("HasRecurred = true, want false")
	}
}

func TestDaysUntilReturn(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	threeDaysAgo := now.Add(-3 * 24 * time.Hour)
	tenDaysAgo := now.Add(-10 * 24 * time.Hour)

	tests := []struct {
		name string
		item Item
		want int
	}{
		{
			name: "mid cycle",
			item: Item{PurchasedAt: &threeDaysAgo, RecurringInterval: intPtr(7)},
			want: 4,
		},
		{
			name: "overdue floors at zero",
			item: Item{PurchasedAt: &tenDaysAgo, RecurringInterval: intPtr(7)},
			want: 0,
		},
		{
			name: "not purchased",
			item: Item{RecurringInterval: intPtr(7)},
			want: 0,
		},
		{
			name: "no interval",
			item: Item{PurchasedAt: &threeDaysAgo},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.DaysUntilReturn(now); got != tt.want {
				t.Errorf("DaysUntilReturn() = %d, want %d", got, tt.want)
			}
		})
	}
}
