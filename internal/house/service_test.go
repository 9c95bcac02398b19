package house

import (
	"context"
	"errors"
	"testing"
)

type fakeStore struct {
	memberships []*Membership
}

func (f *fakeStore) FindActiveMembership(ctx context.Context, userID, houseID string) (*Membership, error) {
	for _, m := range f.memberships {
		if m.UserID == userID && m.HouseID == houseID && m.IsActive {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListActiveMembers(ctx context.Context, houseID string) ([]*Membership, error) {
	var out []*Membership
	for _, m := range f.memberships {
		if m.HouseID == houseID && m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func testStore() *fakeStore {
	return &fakeStore{memberships: []*Membership{
		{ID: "m1", HouseID: "h1", UserID: "alice", DisplayName: "Ali", Color: "#ff0000", IsActive: true},
		{ID: "m2", HouseID: "h1", UserID: "bob", DisplayName: "Bobby", Color: "#00ff00", IsActive: true},
		{ID: "m3", HouseID: "h1", UserID: "carol", DisplayName: "C", IsActive: false},
	}}
}

func TestRequireMember(t *testing.T) {
	svc := NewService(testStore())
	ctx := context.Background()

	if err := svc.RequireMember(ctx, "alice", "h1"); err != nil {
		t.Errorf("RequireMember(alice) error = %v", err)
	}
	if err := svc.RequireMember(ctx, "carol", "h1"); !errors.Is(err, ErrNotMember) {
		t.Errorf("RequireMember(inactive) error = %v, want ErrNotMember", err)
	}
	if err := svc.RequireMember(ctx, "alice", "h2"); !errors.Is(err, ErrNotMember) {
		t.Errorf("RequireMember(wrong house) error = %v, want ErrNotMember", err)
	}
}

func TestMembersMapUsesDisplayIdentity(t *testing.T) {
	svc := NewService(testStore())

	members, err := svc.MembersMap(context.Background(), "h1")
	if err != nil {
		t.Fatalf("MembersMap() error = %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 active members, got %d", len(members))
	}

	alice := members["alice"]
	if alice.DisplayName != "Ali" || alice.Color != "#ff0000" {
		t.Errorf("alice identity = %+v, want house-scoped alias", alice)
	}
	if _, ok := members["carol"]; ok {
		t.Error("inactive member must not appear in the map")
	}
}

func TestListMembersRequiresMembership(t *testing.T) {
	svc := NewService(testStore())

	if _, err := svc.ListMembers(context.Background(), "stranger", "h1"); !errors.Is(err, ErrNotMember) {
		t.Errorf("ListMembers() error = %v, want ErrNotMember", err)
	}

	members, err := svc.ListMembers(context.Background(), "alice", "h1")
	if err != nil {
		t.Fatalf("ListMembers() error = %v", err)
	}
	if len(members) != 2 {
		t.Errorf("expected 2 members, got %d", len(members))
	}
}
