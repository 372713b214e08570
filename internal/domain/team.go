package domain

import "time"

// TeamStatus enumerates team lifecycle states.
type TeamStatus string

const (
	TeamStatusActive    TeamStatus = "ACTIVE"
	TeamStatusInactive  TeamStatus = "INACTIVE"
	TeamStatusCompleted TeamStatus = "COMPLETED"
)

// DefaultTeamCapacity is the member limit applied to newly created teams.
const DefaultTeamCapacity = 6

// Team groups users under an owner. CurrentMembers is recomputed from the
// count of ACTIVE memberships on every roster mutation, never incremented in
// place.
type Team struct {
	ID             string
	Name           string
	Description    string
	Code           string
	OwnerID        string
	MaxMembers     int
	CurrentMembers int
	Status         TeamStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MembershipRole enumerates roles within a team.
type MembershipRole string

const (
	RoleLeader MembershipRole = "LEADER"
	RoleMember MembershipRole = "MEMBER"
)

// MembershipStatus enumerates membership states. Leaving a team flips the row
// to INACTIVE; rows are never deleted.
type MembershipStatus string

const (
	MembershipActive   MembershipStatus = "ACTIVE"
	MembershipInactive MembershipStatus = "INACTIVE"
)

// Membership links a user to a team. At most one row exists per
// (team, user) pair, enforced by a unique constraint.
type Membership struct {
	ID       string
	TeamID   string
	UserID   string
	Role     MembershipRole
	Status   MembershipStatus
	JoinedAt time.Time
}

// TeamMember is the roster view returned alongside a team.
type TeamMember struct {
	UserID   string
	Name     string
	Role     MembershipRole
	Status   MembershipStatus
	JoinedAt time.Time
}
