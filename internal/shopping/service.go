package shopping

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mshalabi/housemate/internal/category"
	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/pkg/metrics"
)

// How far back to look for similar recurring purchases, and how far back
// the recent-recurring report reaches.
const (
	similarItemWindow   = 14 * 24 * time.Hour
	recentRecurringSpan = 30 * 24 * time.Hour
)

// Common errors
var (
	ErrItemNotFound       = errors.New("shopping item not found")
	ErrAlreadyPurchased   = errors.New("item is already purchased")
	ErrMissingInterval    = errors.New("recurring interval is required for recurring items")
	ErrCategoryNotFound   = errors.New("category not found in this house")
	ErrAssigneeNotInHouse = errors.New("assigned user is not a member of this house")
	ErrBatchInvalid       = errors.New("some items do not belong to this house or are already purchased")
)

// DuplicateItemError is returned when an item looks like a recurring item
// that will come back on its own. Callers override it with the force flag.
type DuplicateItemError struct {
	Warnings []string
}

func (e *DuplicateItemError) Error() string {
	return "potential duplicate items detected"
}

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

// Store defines the shopping item persistence the service needs
type Store interface {
	Insert(ctx context.Context, item *Item) (*Item, error)
	Get(ctx context.Context, itemID string) (*Item, error)
	GetMany(ctx context.Context, itemIDs []string) ([]*Item, error)
	List(ctx context.Context, houseID string, f ListFilter) ([]*Item, error)
	MarkPurchased(ctx context.Context, itemIDs []string, userID string, at time.Time) error
	Delete(ctx context.Context, itemID string) error
	RecurringPurchasedSince(ctx context.Context, houseID string, since time.Time) ([]*Item, error)
	PurchasedItems(ctx context.Context, houseID string) ([]*Item, error)
	DueRecurring(ctx context.Context, now time.Time) ([]*Item, error)
	Regenerate(ctx context.Context, original *Item, now time.Time) error
}

// Service owns the shared shopping list: adding items guarded against
// duplicate recurring purchases, purchasing, and regenerating recurring
// items once per purchase cycle
type Service struct {
	store      Store
	members    Members
	categories Categories
	now        func() time.Time
}

// NewService creates a new shopping service
func NewService(store Store, members Members, categories Categories) *Service {
	return &Service{
		store:      store,
		members:    members,
		categories: categories,
		now:        time.Now,
	}
}

// AddItem validates and stores a new shopping item. When the name is
// similar to a recurring item purchased in the last two weeks that will
// return on its own, the add fails with a DuplicateItemError unless the
// request sets force.
func (s *Service) AddItem(ctx context.Context, userID, houseID string, req *CreateItemRequest) (*ItemResponse, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	warnings, err := s.checkForSimilarRecurringItems(ctx, houseID, req.Name)
	if err != nil {
		return nil, err
	}
	if len(warnings) > 0 {
		metrics.DuplicateWarnings.Add(float64(len(warnings)))
		if !req.Force {
			return nil, &DuplicateItemError{Warnings: warnings}
		}
	}

	if req.CategoryID != nil {
		cat, err := s.categories.FindInHouse(ctx, *req.CategoryID, houseID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, ErrCategoryNotFound
		}
	}

	if req.AssignedToID != nil {
		ok, err := s.members.IsActiveMember(ctx, *req.AssignedToID, houseID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAssigneeNotInHouse
		}
	}

	if req.IsRecurring && (req.RecurringInterval == nil || *req.RecurringInterval <= 0) {
		return nil, ErrMissingInterval
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	item, err := s.store.Insert(ctx, &Item{
		HouseID:           houseID,
		Name:              req.Name,
		Quantity:          quantity,
		Notes:             req.Notes,
		CategoryID:        req.CategoryID,
		AssignedToID:      req.AssignedToID,
		IsRecurring:       req.IsRecurring,
		RecurringInterval: req.RecurringInterval,
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, item)
}

// ListItems returns the items of a house with display identities resolved
func (s *Service) ListItems(ctx context.Context, userID, houseID string, f ListFilter) ([]*ItemResponse, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	items, err := s.store.List(ctx, houseID, f)
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, houseID, items)
}

// PurchaseItem marks an unpurchased item of the house as bought by the user
func (s *Service) PurchaseItem(ctx context.Context, userID, houseID, itemID string) (*ItemResponse, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	item, err := s.store.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// An item from another house is reported as missing, not forbidden.
	if item == nil || item.HouseID != houseID {
		return nil, ErrItemNotFound
	}
	if item.PurchasedAt != nil {
		return nil, ErrAlreadyPurchased
	}

	now := s.now()
	if err := s.store.MarkPurchased(ctx, []string{itemID}, userID, now); err != nil {
		return nil, err
	}

	item.PurchasedAt = &now
	item.PurchasedByID = &userID
	return s.toResponse(ctx, item)
}

// BatchPurchaseItems marks several items as bought at the same instant.
// All items must exist, belong to the house, and be unpurchased; a single
// bad item fails the whole batch.
func (s *Service) BatchPurchaseItems(ctx context.Context, userID, houseID string, itemIDs []string) ([]*ItemResponse, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	items, err := s.store.GetMany(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	if len(items) != len(itemIDs) {
		return nil, ErrItemNotFound
	}

	for _, item := range items {
		if item.HouseID != houseID || item.PurchasedAt != nil {
			return nil, ErrBatchInvalid
		}
	}

	now := s.now()
	if err := s.store.MarkPurchased(ctx, itemIDs, userID, now); err != nil {
		return nil, err
	}

	for _, item := range items {
		item.PurchasedAt = &now
		item.PurchasedByID = &userID
	}
	return s.toResponses(ctx, houseID, items)
}

// DeleteItem removes an item from the house's list
func (s *Service) DeleteItem(ctx context.Context, userID, houseID, itemID string) error {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return err
	}

	item, err := s.store.Get(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil || item.HouseID != houseID {
		return ErrItemNotFound
	}

	return s.store.Delete(ctx, itemID)
}

// RecentRecurringItems returns the recurring items purchased in the last
// 30 days with their return countdowns
func (s *Service) RecentRecurringItems(ctx context.Context, userID, houseID string) ([]*RecurringItemView, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	now := s.now()
	items, err := s.store.RecurringPurchasedSince(ctx, houseID, now.Add(-recentRecurringSpan))
	if err != nil {
		return nil, err
	}

	members, err := s.members.MembersMap(ctx, houseID)
	if err != nil {
		return nil, err
	}

	views := make([]*RecurringItemView, len(items))
	for i, item := range items {
		views[i] = &RecurringItemView{
			ItemResponse:    *buildResponse(item, members),
			DaysUntilReturn: item.DaysUntilReturn(now),
			HasRecurred:     item.HasRecurred(),
		}
	}
	return views, nil
}

// PurchaseHistory returns the purchased items of a house, newest first
func (s *Service) PurchaseHistory(ctx context.Context, userID, houseID string) ([]*ItemResponse, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	items, err := s.store.PurchasedItems(ctx, houseID)
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, houseID, items)
}

// checkForSimilarRecurringItems fuzzy-matches the candidate name against
// recurring items purchased in the last two weeks. Only items that have
// not regenerated yet and are still counting down produce warnings.
func (s *Service) checkForSimilarRecurringItems(ctx context.Context, houseID, candidateName string) ([]string, error) {
	now := s.now()
	items, err := s.store.RecurringPurchasedSince(ctx, houseID, now.Add(-similarItemWindow))
	if err != nil {
		return nil, err
	}

	normalizedCandidate := normalizeItemName(candidateName)

	var warnings []string
	for _, item := range items {
		if !itemNamesSimilar(normalizedCandidate, normalizeItemName(item.Name)) {
			continue
		}

		days := item.DaysUntilReturn(now)
		if !item.HasRecurred() && days > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"Similar item %q was recently purchased and will return in %d day(s). Add anyway?",
				item.Name, days))
		}
	}

	return warnings, nil
}

// RegenerateDueItems runs one sweep: every recurring item whose interval
// has elapsed and whose cycle has not regenerated yet gets a fresh,
// unpurchased copy. A failing item is logged and skipped so it cannot
// block the rest of the batch.
func (s *Service) RegenerateDueItems(ctx context.Context, now time.Time) (int, error) {
	items, err := s.store.DueRecurring(ctx, now)
	if err != nil {
		return 0, err
	}

	regenerated := 0
	for _, item := range items {
		if !item.dueForRegeneration(now) {
			continue
		}
		if err := s.store.Regenerate(ctx, item, now); err != nil {
			slog.ErrorContext(ctx, "failed to regenerate recurring item",
				"item_id", item.ID,
				"name", item.Name,
				"error", err)
			continue
		}
		regenerated++
		metrics.RecurringItemsRegenerated.Inc()
	}

	return regenerated, nil
}

func (s *Service) toResponse(ctx context.Context, item *Item) (*ItemResponse, error) {
	members, err := s.members.MembersMap(ctx, item.HouseID)
	if err != nil {
		return nil, err
	}
	return buildResponse(item, members), nil
}

func (s *Service) toResponses(ctx context.Context, houseID string, items []*Item) ([]*ItemResponse, error) {
	members, err := s.members.MembersMap(ctx, houseID)
	if err != nil {
		return nil, err
	}

	responses := make([]*ItemResponse, len(items))
	for i, item := range items {
		responses[i] = buildResponse(item, members)
	}
	return responses, nil
}

func buildResponse(item *Item, members map[string]house.Member) *ItemResponse {
	resp := &ItemResponse{
		ID:                item.ID,
		HouseID:           item.HouseID,
		Name:              item.Name,
		Quantity:          item.Quantity,
		Notes:             item.Notes,
		CategoryID:        item.CategoryID,
		PurchasedAt:       item.PurchasedAt,
		IsRecurring:       item.IsRecurring,
		RecurringInterval: item.RecurringInterval,
		CreatedAt:         item.CreatedAt,
	}
	if item.AssignedToID != nil {
		m := resolveMember(*item.AssignedToID, members)
		resp.AssignedTo = &m
	}
	if item.PurchasedByID != nil {
		m := resolveMember(*item.PurchasedByID, members)
		resp.PurchasedBy = &m
	}
	return resp
}

func resolveMember(userID string, members map[string]house.Member) house.Member {
	if m, ok := members[userID]; ok {
		return m
	}
	return house.Member{ID: userID}
}
