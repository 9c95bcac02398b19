package category

import "context"

// Members is the membership gate
type Members interface {
	RequireMember(ctx context.Context, userID, houseID string) error
}

// Store defines the category reads the service needs
type Store interface {
	ListByHouse(ctx context.Context, houseID string) ([]*Category, error)
}

// Service exposes a house's categories to its members
type Service struct {
	store   Store
	members Members
}

// NewService creates a new category service
func NewService(store Store, members Members) *Service {
	return &Service{store: store, members: members}
}

// ListHouseCategories returns the categories of a house
func (s *Service) ListHouseCategories(ctx context.Context, userID, houseID string) ([]*Category, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}
	return s.store.ListByHouse(ctx, houseID)
}
