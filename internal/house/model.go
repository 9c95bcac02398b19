package house

import "time"

// Membership represents a user's active association with a house. The
// display name and color are house-scoped aliases, distinct from the
// user's global profile.
type Membership struct {
	ID          string    `json:"id"`
	HouseID     string    `json:"house_id"`
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"is_active"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Member is the house-scoped display identity of a user. It is resolved
// at the response boundary and never embedded in stored entities.
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Color       string `json:"color"`
}

// Member returns the display identity carried by the membership
func (m *Membership) Member() Member {
	return Member{
		ID:          m.UserID,
		DisplayName: m.DisplayName,
		Color:       m.Color,
	}
}
