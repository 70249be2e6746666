package models

import "errors"

// Role is a member's role within a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Member is one user's membership in a group.
type Member struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// Group represents a bounded set of members. A group scopes which expenses
// and payments are considered for per-group balances and settlements.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Goa Trip").
	Name string `json:"name"`

	// Members is the list of users in this group.
	Members []Member `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// Validate checks the group is well formed.
func (g *Group) Validate() error {
	if g.Name == "" {
		return errors.New("group requires a name")
	}
	seen := make(map[string]bool, len(g.Members))
	for _, m := range g.Members {
		if m.UserID == "" {
			return errors.New("group member requires a user")
		}
		if seen[m.UserID] {
			return errors.New("duplicate group member " + m.UserID)
		}
		seen[m.UserID] = true
		if m.Role != "" && !m.Role.Valid() {
			return errors.New("unknown role " + string(m.Role) + " for member " + m.UserID)
		}
	}
	return nil
}

// MemberIDs returns the user IDs of all members, in membership order.
func (g *Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.UserID
	}
	return ids
}

// HasMember reports whether the user belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
