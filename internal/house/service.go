package house

import (
	"context"
	"errors"
)

// ErrNotMember is returned when the requesting user has no active
// membership in the house. It is reported as not-found rather than
// forbidden so house existence is never confirmed to non-members.
var ErrNotMember = errors.New("house not found or you are not a member")

// Store defines the membership lookups the service needs
type Store interface {
	FindActiveMembership(ctx context.Context, userID, houseID string) (*Membership, error)
	ListActiveMembers(ctx context.Context, houseID string) ([]*Membership, error)
}

// Service is the membership gate every house-scoped operation goes through
type Service struct {
	store Store
}

// NewService creates a new house service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// RequireMember fails with ErrNotMember unless the user is an active
// member of the house
func (s *Service) RequireMember(ctx context.Context, userID, houseID string) error {
	m, err := s.store.FindActiveMembership(ctx, userID, houseID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrNotMember
	}
	return nil
}

// IsActiveMember reports whether the user is an active member of the house
func (s *Service) IsActiveMember(ctx context.Context, userID, houseID string) (bool, error) {
	m, err := s.store.FindActiveMembership(ctx, userID, houseID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

// MembersMap returns the house-scoped display identities of all active
// members, keyed by user ID
func (s *Service) MembersMap(ctx context.Context, houseID string) (map[string]Member, error) {
	memberships, err := s.store.ListActiveMembers(ctx, houseID)
	if err != nil {
		return nil, err
	}

	members := make(map[string]Member, len(memberships))
	for _, m := range memberships {
		members[m.UserID] = m.Member()
	}
	return members, nil
}

// ListMembers returns the display identities of all active house members
func (s *Service) ListMembers(ctx context.Context, userID, houseID string) ([]Member, error) {
	if err := s.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	memberships, err := s.store.ListActiveMembers(ctx, houseID)
	if err != nil {
		return nil, err
	}

	members := make([]Member, len(memberships))
	for i, m := range memberships {
		members[i] = m.Member()
	}
	return members, nil
}
